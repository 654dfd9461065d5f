package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Hammers the engine from many goroutines. Invalid-state actions are
// expected and come back as client errors; what must never happen is a
// 5xx or a negative balance.
func TestAPI_ConcurrentPlaySafety(t *testing.T) {
	app := newTestApp(t, 50)

	code, _ := app.post(t, "/api/v1/wallet/deposit", map[string]interface{}{
		"asset": "BTC", "amount": 10.0,
	})
	require.Equal(t, http.StatusOK, code)

	paths := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodPost, "/api/v1/game/deal", `{"bet":0.01}`},
		{http.MethodPost, "/api/v1/game/hit", `{}`},
		{http.MethodPost, "/api/v1/game/stand", `{}`},
		{http.MethodPost, "/api/v1/game/double", `{}`},
		{http.MethodGet, "/api/v1/game", ""},
		{http.MethodGet, "/api/v1/wallet", ""},
		{http.MethodGet, "/api/v1/session/stats", ""},
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	var serverErrors []string

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				p := paths[(worker+j)%len(paths)]

				var resp *http.Response
				var err error
				if p.method == http.MethodGet {
					resp, err = http.Get(app.server.URL + p.path)
				} else {
					resp, err = http.Post(app.server.URL+p.path, "application/json", bytes.NewReader([]byte(p.body)))
				}
				if err != nil {
					mu.Lock()
					serverErrors = append(serverErrors, err.Error())
					mu.Unlock()
					continue
				}
				if resp.StatusCode >= http.StatusInternalServerError {
					mu.Lock()
					serverErrors = append(serverErrors, p.method+" "+p.path)
					mu.Unlock()
				}
				io.Copy(io.Discard, resp.Body)
				resp.Body.Close()
			}
		}(i)
	}
	wg.Wait()

	assert.Empty(t, serverErrors, "no request may fail with a server error")

	// The ledger stayed consistent.
	code, body := app.get(t, "/api/v1/wallet")
	require.Equal(t, http.StatusOK, code)
	raw, err := json.Marshal(body["data"])
	require.NoError(t, err)
	var wallet struct {
		Entries []struct {
			Asset   string  `json:"asset"`
			Balance float64 `json:"balance"`
		} `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(raw, &wallet))
	for _, e := range wallet.Entries {
		assert.GreaterOrEqual(t, e.Balance, 0.0, "asset %s", e.Asset)
	}
}
