package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"fxdisplay/internal/domain"

	"github.com/shopspring/decimal"
)

type ExchangeRateClient struct {
	http    *http.Client
	baseURL string
}

type apiRate struct {
	From string          `json:"from"`
	To   string          `json:"to"`
	Rate decimal.Decimal `json:"rate"`
	Date string          `json:"date"`
}

// GetExchangeRates calls GET {baseURL}/{base}. The body is a JSON array of
// {from, to, rate, date} entries; any invalid entry fails the whole response.
func (c *ExchangeRateClient) GetExchangeRates(ctx context.Context, base domain.CurrencyCode) ([]domain.ExchangeRate, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + url.PathEscape(string(base))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for currency %q: %w", base, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request for currency %q: %w", base, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status code %d for currency %q: %s", resp.StatusCode, base, resp.Status)
	}

	var body []apiRate
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode response for currency %q: %w", base, err)
	}

	rates := make([]domain.ExchangeRate, 0, len(body))
	for i, entry := range body {
		r, convErr := entry.toDomain()
		if convErr != nil {
			return nil, fmt.Errorf("invalid entry %d for currency %q: %w", i, base, convErr)
		}
		rates = append(rates, r)
	}
	return rates, nil
}

func (a apiRate) toDomain() (domain.ExchangeRate, error) {
	date, err := domain.ParseDate(a.Date)
	if err != nil {
		return domain.ExchangeRate{}, err
	}
	r := domain.ExchangeRate{
		From:   domain.NormalizeCode(a.From),
		To:     domain.NormalizeCode(a.To),
		Value:  a.Rate,
		Date:   date,
		Source: domain.SourceBackend,
	}
	if err = r.Validate(); err != nil {
		return domain.ExchangeRate{}, err
	}
	return r, nil
}

func NewExchangeRateClient(httpClient *http.Client, baseURL string) *ExchangeRateClient {
	return &ExchangeRateClient{http: httpClient, baseURL: baseURL}
}
