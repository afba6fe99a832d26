// True randomness via random.org for runs where replayability doesn't
// matter. Falls back to crypto/rand when the API is unavailable.
package entropy

import (
	"bytes"
	"crypto/rand"
	"encoding/binary"
	"encoding/json"
	"io"
	"log/slog"
	"math"
	"net/http"
	"sync"
	"time"
)

// TrueRandom is a Source backed by random.org with a local pool.
// A nil *TrueRandom is usable and serves crypto/rand values.
type TrueRandom struct {
	apiKey string
	client *http.Client

	mu    sync.Mutex
	pool  []float64
	spare float64 // cached second output of the Box-Muller transform
	hasSp bool
}

// NewTrueRandom creates a random.org-backed Source. Returns nil if apiKey is
// empty; the nil client still works, serving crypto/rand values.
func NewTrueRandom(apiKey string) *TrueRandom {
	if apiKey == "" {
		return nil
	}
	return &TrueRandom{
		apiKey: apiKey,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

// Float64 returns a random value in [0, 1). Uses the pool, refilling from
// random.org when low. Falls back to crypto/rand on API failure.
func (t *TrueRandom) Float64() float64 {
	if t == nil {
		return cryptoFloat()
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.pool) < 10 {
		t.refill()
	}

	if len(t.pool) == 0 {
		return cryptoFloat()
	}

	val := t.pool[0]
	t.pool = t.pool[1:]
	return val
}

// NormFloat64 returns a standard-normal value via the Box-Muller transform
// over two uniform draws.
func (t *TrueRandom) NormFloat64() float64 {
	if t != nil {
		t.mu.Lock()
		if t.hasSp {
			t.hasSp = false
			v := t.spare
			t.mu.Unlock()
			return v
		}
		t.mu.Unlock()
	}

	u1 := t.Float64()
	u2 := t.Float64()
	if u1 < 1e-12 {
		u1 = 1e-12
	}
	r := math.Sqrt(-2 * math.Log(u1))
	z0 := r * math.Cos(2*math.Pi*u2)
	z1 := r * math.Sin(2*math.Pi*u2)

	if t != nil {
		t.mu.Lock()
		t.spare = z1
		t.hasSp = true
		t.mu.Unlock()
	}
	return z0
}

// IntN returns a uniform value in [0, n).
func (t *TrueRandom) IntN(n int) int {
	if n <= 0 {
		panic("entropy: IntN with non-positive n")
	}
	v := int(t.Float64() * float64(n))
	if v >= n {
		v = n - 1
	}
	return v
}

// Enabled returns true if the client has a valid API key.
func (t *TrueRandom) Enabled() bool {
	return t != nil && t.apiKey != ""
}

func (t *TrueRandom) refill() {
	req := map[string]any{
		"jsonrpc": "2.0",
		"method":  "generateDecimalFractions",
		"params": map[string]any{
			"apiKey":        t.apiKey,
			"n":             100,
			"decimalPlaces": 6,
		},
		"id": 1,
	}

	body, err := json.Marshal(req)
	if err != nil {
		slog.Debug("random.org marshal failed", "error", err)
		return
	}

	resp, err := t.client.Post("https://api.random.org/json-rpc/4/invoke", "application/json", bytes.NewReader(body))
	if err != nil {
		slog.Debug("random.org fetch failed", "error", err)
		return
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Debug("random.org read failed", "error", err)
		return
	}

	var result struct {
		Result struct {
			Random struct {
				Data []float64 `json:"data"`
			} `json:"random"`
		} `json:"result"`
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	}

	if err := json.Unmarshal(respBody, &result); err != nil {
		slog.Debug("random.org parse failed", "error", err)
		return
	}

	if result.Error != nil {
		slog.Debug("random.org API error", "error", result.Error.Message)
		return
	}

	t.pool = append(t.pool, result.Result.Random.Data...)
	slog.Debug("random.org pool refilled", "count", len(result.Result.Random.Data))
}

// cryptoFloat generates a random float64 using crypto/rand as fallback.
func cryptoFloat() float64 {
	var buf [8]byte
	_, err := rand.Read(buf[:])
	if err != nil {
		// This should never happen but return 0.5 as a safe default.
		return 0.5
	}
	// Use only 53 bits for a uniform float64 in [0, 1).
	n := binary.LittleEndian.Uint64(buf[:]) >> 11
	return float64(n) / float64(1<<53)
}
