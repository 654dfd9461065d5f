package domain

import "fmt"

// Asset is one of the supported play-money cryptocurrencies. The set
// is closed; each asset carries an independent ledger entry.
type Asset string

const (
	BTC Asset = "BTC"
	LTC Asset = "LTC"
	ETH Asset = "ETH"
	SOL Asset = "SOL"
)

// Assets lists every supported asset.
var Assets = []Asset{BTC, LTC, ETH, SOL}

// demo deposit addresses, one per asset. No real custody exists behind
// them.
var depositAddresses = map[Asset]string{
	BTC: "bc1qxy2kgdygjrsqtzq2n0yrf2493p83kkfjhx0wlh",
	LTC: "ltc1qhf5w9h2jwm8zx4c3q2p0yrf2493p83kkfjhx0wlh",
	ETH: "0x742d35Cc6634C0532925a3b844Bc9e7595f0bEb7",
	SOL: "7xKXtg2CW87d97TXJSDpbD5jBkheTqA83TZRuJosgAsU",
}

// ParseAsset validates a ticker string against the supported set.
func ParseAsset(s string) (Asset, error) {
	a := Asset(s)
	switch a {
	case BTC, LTC, ETH, SOL:
		return a, nil
	}
	return "", fmt.Errorf("unsupported asset %q", s)
}

// DepositAddress returns the fixed demo deposit address for the asset.
func (a Asset) DepositAddress() string {
	return depositAddresses[a]
}

func (a Asset) String() string {
	return string(a)
}
