package currency

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
)

// Converter turns an amount in one currency into another. Implementations
// report failure through ok rather than an error: display conversion is
// best-effort and callers fall back to the unconverted amount.
type Converter interface {
	Convert(amount decimal.Decimal, from, to string) (value decimal.Decimal, ok bool)
}

// DefaultEndpoint serves latest exchange rates keyed by base currency.
const DefaultEndpoint = "https://open.er-api.com/v6/latest"

// DefaultTTL is how long fetched rates are reused before refetching.
const DefaultTTL = 6 * time.Hour

// Client fetches exchange rates over HTTP and caches them per base
// currency in files under CacheDir.
type Client struct {
	Endpoint string
	CacheDir string
	TTL      time.Duration
	HTTP     *http.Client

	now func() time.Time
}

// NewClient builds a converter caching under cacheDir.
func NewClient(cacheDir string) *Client {
	return &Client{
		Endpoint: DefaultEndpoint,
		CacheDir: cacheDir,
		TTL:      DefaultTTL,
		HTTP:     &http.Client{Timeout: 10 * time.Second},
		now:      time.Now,
	}
}

// cachedRates is the on-disk cache shape for one base currency.
type cachedRates struct {
	FetchedAt time.Time          `json:"fetchedAt"`
	Rates     map[string]float64 `json:"rates"`
}

// ratesResponse is the subset of the endpoint's reply we use.
type ratesResponse struct {
	Rates map[string]float64 `json:"rates"`
}

// Convert implements Converter. Identical currencies convert to
// themselves without a lookup.
func (c *Client) Convert(amount decimal.Decimal, from, to string) (decimal.Decimal, bool) {
	if from == to {
		return amount, true
	}
	rates, err := c.rates(from)
	if err != nil {
		return decimal.Zero, false
	}
	rate, found := rates[to]
	if !found || rate <= 0 {
		return decimal.Zero, false
	}
	return amount.Mul(decimal.NewFromFloat(rate)), true
}

// rates returns the rate table for a base currency, from cache when fresh
// enough, otherwise fetched and cached.
func (c *Client) rates(base string) (map[string]float64, error) {
	if cached, err := c.readCache(base); err == nil {
		return cached, nil
	}

	resp, err := c.HTTP.Get(fmt.Sprintf("%s/%s", c.Endpoint, base))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rate lookup for %s returned %s", base, resp.Status)
	}

	var parsed ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	if len(parsed.Rates) == 0 {
		return nil, fmt.Errorf("rate lookup for %s returned no rates", base)
	}

	// Cache write failures are ignored: the rates are still usable.
	_ = c.writeCache(base, parsed.Rates)

	return parsed.Rates, nil
}

func (c *Client) cachePath(base string) string {
	return filepath.Join(c.CacheDir, fmt.Sprintf("rates-%s.json", base))
}

func (c *Client) readCache(base string) (map[string]float64, error) {
	data, err := os.ReadFile(c.cachePath(base))
	if err != nil {
		return nil, err
	}
	var cached cachedRates
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, err
	}
	if c.now().Sub(cached.FetchedAt) > c.TTL {
		return nil, fmt.Errorf("cached rates for %s are stale", base)
	}
	return cached.Rates, nil
}

func (c *Client) writeCache(base string, rates map[string]float64) error {
	if err := os.MkdirAll(c.CacheDir, 0o755); err != nil {
		return err
	}
	data, err := json.Marshal(cachedRates{FetchedAt: c.now(), Rates: rates})
	if err != nil {
		return err
	}
	return os.WriteFile(c.cachePath(base), data, 0o644)
}
