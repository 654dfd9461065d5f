package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"crypto-blackjack/internal/adapter/feed"
	httpHandler "crypto-blackjack/internal/adapter/http/handler"
	"crypto-blackjack/internal/adapter/notify"
	"crypto-blackjack/internal/core/domain"
	"crypto-blackjack/internal/core/ports"
	"crypto-blackjack/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp builds the full application stack: real services and the
// real HTTP layer, with the market data feed pointed at a local stub.
// The dealer scheduler runs synchronously so every round settles
// within the request that triggered it.

type testApp struct {
	server *httptest.Server
	quotes *httptest.Server
}

func newTestApp(t *testing.T, multiplier float64) *testApp {
	t.Helper()

	log := zerolog.Nop()

	quotes := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{
			"bitcoin":  {"usd": 97000},
			"litecoin": {"usd": 88},
			"ethereum": {"usd": 3600},
			"solana":   {"usd": 210}
		}`)
	}))
	t.Cleanup(quotes.Close)

	priceFeed := feed.NewCoinGecko(quotes.URL, 2*time.Second, log)
	priceSvc := service.NewPriceService(priceFeed, time.Minute, log)
	priceSvc.Refresh(context.Background())

	recorder := notify.NewRecorder(50, log)
	ledgerSvc := service.NewLedgerService(multiplier, priceSvc, recorder, log)
	gameSvc := service.NewGameService(
		service.GameConfig{Decks: 6, ReshuffleBelow: 52, HistoryLimit: 20},
		domain.BTC,
		rand.New(rand.NewSource(42)),
		ledgerSvc,
		recorder,
		service.SyncScheduler{},
		log,
	)
	reportingSvc := service.NewReportingService(gameSvc, ledgerSvc, priceSvc, multiplier)

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		GameSvc:        gameSvc,
		LedgerSvc:      ledgerSvc,
		ReportingSvc:   reportingSvc,
		PriceSvc:       priceSvc,
		Notifications:  recorder,
		HealthCheckers: []ports.HealthChecker{priceSvc},
		DefaultBet:     0.001,
		Logger:         log,
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testApp{server: srv, quotes: quotes}
}

func (a *testApp) post(t *testing.T, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	raw := []byte("{}")
	if body != nil {
		var err error
		raw, err = json.Marshal(body)
		require.NoError(t, err)
	}
	resp, err := http.Post(a.server.URL+path, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	return decode(t, resp)
}

func (a *testApp) put(t *testing.T, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPut, a.server.URL+path, bytes.NewReader(raw))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return decode(t, resp)
}

func (a *testApp) get(t *testing.T, path string) (int, map[string]interface{}) {
	t.Helper()
	resp, err := http.Get(a.server.URL + path)
	require.NoError(t, err)
	return decode(t, resp)
}

func decode(t *testing.T, resp *http.Response) (int, map[string]interface{}) {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body), "body: %s", raw)
	return resp.StatusCode, body
}

// playRound deals one round and stands it out if the player gets a
// turn. The synchronous scheduler settles the dealer turn inline.
func (a *testApp) playRound(t *testing.T, bet float64) {
	t.Helper()
	code, body := a.post(t, "/api/v1/game/deal", map[string]interface{}{"bet": bet})
	require.Equal(t, http.StatusOK, code, "deal: %v", body)

	state := body["data"].(map[string]interface{})["state"].(string)
	if state == "playing" {
		code, body = a.post(t, "/api/v1/game/stand", nil)
		require.Equal(t, http.StatusOK, code, "stand: %v", body)
		state = body["data"].(map[string]interface{})["state"].(string)
	}
	require.Equal(t, "finished", state)
}

func TestAPI_DepositPlayWithdrawFlow(t *testing.T) {
	// Multiplier 0.2 keeps the rollover short: 1.0 deposited needs
	// 0.2 wagered, two 0.1 rounds.
	app := newTestApp(t, 0.2)

	// Withdrawing from an empty wallet fails on the balance check.
	code, body := app.post(t, "/api/v1/wallet/withdraw", map[string]interface{}{
		"asset": "BTC", "amount": 0.1, "address": "bc1qintegration",
	})
	assert.Equal(t, http.StatusPaymentRequired, code, "empty wallet: %v", body)
	assert.Equal(t, "WAL_003", body["error_code"])

	// Deposit.
	code, body = app.post(t, "/api/v1/wallet/deposit", map[string]interface{}{
		"asset": "BTC", "amount": 1.0,
	})
	require.Equal(t, http.StatusOK, code)
	entry := body["data"].(map[string]interface{})
	assert.InDelta(t, 1.0, entry["balance"].(float64), 1e-9)
	assert.InDelta(t, 1.0, entry["deposited"].(float64), 1e-9)

	// Gate still closed: nothing wagered yet.
	code, body = app.post(t, "/api/v1/wallet/withdraw", map[string]interface{}{
		"asset": "BTC", "amount": 0.1, "address": "bc1qintegration",
	})
	require.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, "WAL_004", body["error_code"])

	// Two rounds open the gate.
	app.playRound(t, 0.1)
	app.playRound(t, 0.1)

	code, body = app.get(t, "/api/v1/session/stats")
	require.Equal(t, http.StatusOK, code)
	stats := body["data"].(map[string]interface{})
	assert.Equal(t, float64(2), stats["rounds"])
	assert.InDelta(t, 0.2, stats["wagered"].(float64), 1e-9)
	assert.InDelta(t, 0.0, stats["remaining_wager"].(float64), 1e-9)

	// Withdrawal succeeds and resets the gate.
	code, body = app.post(t, "/api/v1/wallet/withdraw", map[string]interface{}{
		"asset": "BTC", "amount": 0.1, "address": "bc1qintegration",
	})
	require.Equal(t, http.StatusOK, code, "withdraw: %v", body)
	entry = body["data"].(map[string]interface{})
	assert.Equal(t, float64(0), entry["deposited"])
	assert.Equal(t, float64(0), entry["wagered"])

	// The reset gate is open until the next deposit.
	code, _ = app.post(t, "/api/v1/wallet/withdraw", map[string]interface{}{
		"asset": "BTC", "amount": 0.05, "address": "bc1qintegration",
	})
	assert.Equal(t, http.StatusOK, code)
}

func TestAPI_RoundLifecycleOverHTTP(t *testing.T) {
	app := newTestApp(t, 50)

	code, _ := app.post(t, "/api/v1/wallet/deposit", map[string]interface{}{
		"asset": "BTC", "amount": 1.0,
	})
	require.Equal(t, http.StatusOK, code)

	// Actions before any deal are rejected.
	code, body := app.post(t, "/api/v1/game/hit", nil)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "BET_004", body["error_code"])

	code, body = app.post(t, "/api/v1/game/deal", map[string]interface{}{"bet": 0.1})
	require.Equal(t, http.StatusOK, code)
	data := body["data"].(map[string]interface{})
	assert.Len(t, data["player"].([]interface{}), 2)

	if data["state"] == "playing" {
		// Hole card stays masked during the player's turn.
		dealer := data["dealer"].([]interface{})
		require.Len(t, dealer, 2)
		assert.Equal(t, true, dealer[1].(map[string]interface{})["hidden"])
		_, present := data["dealer_value"]
		assert.False(t, present)

		// A second deal mid-round is rejected.
		code, body = app.post(t, "/api/v1/game/deal", map[string]interface{}{"bet": 0.1})
		assert.Equal(t, http.StatusConflict, code)
		assert.Equal(t, "BET_003", body["error_code"])

		code, body = app.post(t, "/api/v1/game/stand", nil)
		require.Equal(t, http.StatusOK, code)
		data = body["data"].(map[string]interface{})
	}

	require.Equal(t, "finished", data["state"])
	assert.Equal(t, true, data["dealer_revealed"])
	assert.NotNil(t, data["dealer_value"])
	assert.NotEmpty(t, data["message"])

	// History shows the settled round.
	code, body = app.get(t, "/api/v1/game")
	require.Equal(t, http.StatusOK, code)
	history := body["data"].(map[string]interface{})["history"].([]interface{})
	assert.Len(t, history, 1)
}

func TestAPI_AssetSwitchClearsHistory(t *testing.T) {
	app := newTestApp(t, 50)

	code, _ := app.post(t, "/api/v1/wallet/deposit", map[string]interface{}{
		"asset": "BTC", "amount": 1.0,
	})
	require.Equal(t, http.StatusOK, code)

	app.playRound(t, 0.01)

	code, body := app.put(t, "/api/v1/session/asset", map[string]interface{}{"asset": "ETH"})
	require.Equal(t, http.StatusOK, code)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "ETH", data["asset"])
	assert.Empty(t, data["history"])
}

func TestAPI_BetExceedingBalanceRejected(t *testing.T) {
	app := newTestApp(t, 50)

	code, body := app.post(t, "/api/v1/game/deal", map[string]interface{}{"bet": 0.5})
	assert.Equal(t, http.StatusPaymentRequired, code)
	assert.Equal(t, "BET_001", body["error_code"])

	// The rejection reaches the notification stream.
	code, body = app.get(t, "/api/v1/notifications")
	require.Equal(t, http.StatusOK, code)
	items := body["data"].([]interface{})
	require.NotEmpty(t, items)
	assert.Equal(t, "Insufficient Balance", items[0].(map[string]interface{})["title"])
}

func TestAPI_PricesAndHealth(t *testing.T) {
	app := newTestApp(t, 50)

	code, body := app.get(t, "/api/v1/prices")
	require.Equal(t, http.StatusOK, code)
	prices := body["data"].(map[string]interface{})
	assert.Equal(t, float64(97000), prices["BTC"])
	assert.Equal(t, float64(210), prices["SOL"])

	code, body = app.get(t, "/health")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", body["status"])
}

func TestAPI_DepositAddressLookup(t *testing.T) {
	app := newTestApp(t, 50)

	code, body := app.get(t, "/api/v1/wallet/address?asset=LTC")
	require.Equal(t, http.StatusOK, code)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "LTC", data["asset"])
	assert.Equal(t, domain.LTC.DepositAddress(), data["address"])
}
