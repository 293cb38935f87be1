package calendar

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"
)

// nseDateLayout is the trading-date format used by the NSE holiday master
// endpoint, e.g. "26-Jan-2026".
const nseDateLayout = "02-Jan-2006"

// Calendar answers whether the exchange is closed on a given date: weekends
// always, plus the official NSE trading-holiday list. The list is fetched
// lazily and cached; a stale list is kept when a refresh fails.
type Calendar struct {
	URL     string
	Client  *http.Client
	Refresh time.Duration

	mu        sync.Mutex
	fetchedAt time.Time
	holidays  map[string]bool // keyed by date in 2006-01-02 form
}

// New creates a Calendar backed by the given holiday-master URL.
func New(url string, refresh time.Duration) *Calendar {
	if refresh <= 0 {
		refresh = 7 * 24 * time.Hour
	}
	return &Calendar{
		URL:     url,
		Client:  &http.Client{Timeout: 10 * time.Second},
		Refresh: refresh,
	}
}

// IsMarketHoliday reports whether the market is closed on the given date.
func (c *Calendar) IsMarketHoliday(date time.Time) bool {
	wd := date.Weekday()
	if wd == time.Saturday || wd == time.Sunday {
		return true
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.holidays == nil || time.Since(c.fetchedAt) >= c.Refresh {
		if err := c.refreshLocked(); err != nil {
			log.Printf("[WARN] could not update holiday list: %v", err)
		}
	}
	return c.holidays[date.Format("2006-01-02")]
}

// holidayMaster is the NSE response shape; CM carries the cash-market list.
type holidayMaster struct {
	CM []struct {
		TradingDate string `json:"tradingDate"`
	} `json:"CM"`
}

func (c *Calendar) refreshLocked() error {
	req, err := http.NewRequest("GET", c.URL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.Client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch holidays: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("fetch holidays: status %d, body: %s", resp.StatusCode, string(body))
	}

	var master holidayMaster
	if err := json.NewDecoder(resp.Body).Decode(&master); err != nil {
		return fmt.Errorf("decode holidays: %w", err)
	}

	holidays := make(map[string]bool, len(master.CM))
	for _, h := range master.CM {
		d, err := time.Parse(nseDateLayout, h.TradingDate)
		if err != nil {
			log.Printf("[WARN] skip unparseable holiday date %q: %v", h.TradingDate, err)
			continue
		}
		holidays[d.Format("2006-01-02")] = true
	}

	c.holidays = holidays
	c.fetchedAt = time.Now()
	log.Printf("[INFO] holiday list refreshed: %d entries", len(holidays))
	return nil
}
