package holidayapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/staffdesk/hr-backoffice/internal/config"
)

// PublicHoliday is one entry of the public holiday feed.
type PublicHoliday struct {
	Date      string `json:"date"` // "2006-01-02"
	LocalName string `json:"localName"`
	Name      string `json:"name"`
}

// Client fetches national holidays from a Nager.Date-compatible feed.
type Client struct {
	baseURL     string
	countryCode string
	httpClient  *http.Client
}

func NewClient(cfg config.HolidayFeedConfig) *Client {
	return &Client{
		baseURL:     cfg.BaseURL,
		countryCode: cfg.CountryCode,
		httpClient:  &http.Client{Timeout: cfg.Timeout},
	}
}

// APIError represents a non-2xx response from the feed.
type APIError struct {
	StatusCode int
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("holiday feed error [%d] %s", e.StatusCode, e.URL)
}

// PublicHolidays fetches the feed for one calendar year.
func (c *Client) PublicHolidays(ctx context.Context, year int) ([]PublicHoliday, error) {
	url := fmt.Sprintf("%s/PublicHolidays/%d/%s", c.baseURL, year, c.countryCode)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build holiday feed request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch holiday feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, URL: url}
	}

	var holidays []PublicHoliday
	if err := json.NewDecoder(resp.Body).Decode(&holidays); err != nil {
		return nil, fmt.Errorf("failed to decode holiday feed response: %w", err)
	}

	for _, h := range holidays {
		if _, err := time.Parse("2006-01-02", h.Date); err != nil {
			return nil, fmt.Errorf("holiday feed returned malformed date %q: %w", h.Date, err)
		}
	}

	return holidays, nil
}
