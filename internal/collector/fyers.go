package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"NiftyPulse/internal/model"
)

// FyersFetcher implements Fetcher using the Fyers v3 history API.
type FyersFetcher struct {
	BaseURL     string
	AccessToken string
	Client      *http.Client
}

// NewFyersFetcher creates a fetcher with optional proxy support.
func NewFyersFetcher(baseURL, accessToken, proxyURL string) *FyersFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &FyersFetcher{
		BaseURL:     baseURL,
		AccessToken: accessToken,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *FyersFetcher) Name() string { return "fyers" }

// fyersHistory is the history endpoint response: candles are
// [timestamp, open, high, low, close, volume] rows.
type fyersHistory struct {
	S       string      `json:"s"`
	Message string      `json:"message"`
	Candles [][]float64 `json:"candles"`
}

func (f *FyersFetcher) FetchIntradayBars(symbol string, days int) ([]model.OHLCV, error) {
	to := time.Now()
	from := to.AddDate(0, 0, -days)
	endpoint := fmt.Sprintf("%s/data/history?symbol=%s&resolution=15&date_format=1&range_from=%s&range_to=%s&cont_flag=1",
		f.BaseURL, url.QueryEscape(symbol), from.Format("2006-01-02"), to.Format("2006-01-02"))

	req, err := http.NewRequest("GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+f.AccessToken)

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fyers fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("fyers: status %d, body: %s", resp.StatusCode, string(body))
	}

	var hist fyersHistory
	if err := json.NewDecoder(resp.Body).Decode(&hist); err != nil {
		return nil, fmt.Errorf("fyers decode: %w", err)
	}
	if hist.S != "ok" {
		return nil, fmt.Errorf("fyers api error: s=%s message=%s", hist.S, hist.Message)
	}
	if len(hist.Candles) == 0 {
		return nil, fmt.Errorf("fyers: no candles returned")
	}

	bars := make([]model.OHLCV, 0, len(hist.Candles))
	for _, c := range hist.Candles {
		if len(c) < 6 {
			continue
		}
		bars = append(bars, model.OHLCV{
			Time:   time.Unix(int64(c[0]), 0),
			Open:   c[1],
			High:   c[2],
			Low:    c[3],
			Close:  c[4],
			Volume: c[5],
		})
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}
