package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"crypto-blackjack/internal/core/domain"

	"github.com/rs/zerolog"
)

// DefaultBaseURL is the public CoinGecko API root.
const DefaultBaseURL = "https://api.coingecko.com/api/v3"

// coinIDs maps each supported asset to its CoinGecko identifier.
var coinIDs = map[domain.Asset]string{
	domain.BTC: "bitcoin",
	domain.LTC: "litecoin",
	domain.ETH: "ethereum",
	domain.SOL: "solana",
}

// CoinGecko implements ports.PriceFeed against the CoinGecko simple
// price endpoint.
type CoinGecko struct {
	client  *http.Client
	baseURL string
	log     zerolog.Logger
}

// NewCoinGecko creates a feed client. baseURL defaults to the public
// API when empty.
func NewCoinGecko(baseURL string, timeout time.Duration, log zerolog.Logger) *CoinGecko {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &CoinGecko{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
		log:     log,
	}
}

// Fetch implements ports.PriceFeed. Assets missing from the response
// are simply absent from the result; the price service keeps their
// previous quotes.
func (c *CoinGecko) Fetch(ctx context.Context) (map[domain.Asset]float64, error) {
	url := c.baseURL + "/simple/price?ids=bitcoin,litecoin,ethereum,solana&vs_currencies=usd"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building price request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching prices: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("price API returned status %d", resp.StatusCode)
	}

	var payload map[string]map[string]float64
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding price response: %w", err)
	}

	quotes := make(map[domain.Asset]float64, len(coinIDs))
	for asset, id := range coinIDs {
		if entry, ok := payload[id]; ok {
			quotes[asset] = entry["usd"]
		}
	}

	c.log.Debug().Int("assets", len(quotes)).Msg("fetched quotes")
	return quotes, nil
}
