package weatherapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/doeshing/weathercli/internal/domain"
	"github.com/doeshing/weathercli/internal/ports"
)

// Client fetches forecasts from WeatherAPI.com.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	clock      ports.Clock
	logger     ports.Logger
}

// NewClient builds a client for baseURL (e.g. http://api.weatherapi.com/v1).
func NewClient(baseURL, apiKey string, timeout time.Duration, clock ports.Clock, logger ports.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout:       timeout,
			CheckRedirect: limitRedirects,
		},
		clock:  clock,
		logger: logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return "WeatherAPI"
}

// Fetch retrieves the forecast window for city. No retries are attempted.
func (c *Client) Fetch(ctx context.Context, city string) (domain.ForecastRecord, error) {
	endpoint := c.forecastURL(city)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.ForecastRecord{}, &domain.TransportError{Err: fmt.Errorf("build request: %w", err)}
	}

	c.logger.Debug("requesting forecast", map[string]interface{}{"city": city, "days": domain.ForecastDays})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.ForecastRecord{}, classifyTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.ForecastRecord{}, classifyTransportError(err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Debug("forecast request rejected", map[string]interface{}{
			"status":  resp.StatusCode,
			"message": errorMessage(body),
		})
		return domain.ForecastRecord{}, domain.ErrRetrievalFailed
	}

	var payload forecastResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return domain.ForecastRecord{}, &domain.TransportError{Err: fmt.Errorf("decode forecast body: %w", err)}
	}
	if payload.Error != nil {
		return domain.ForecastRecord{}, &domain.APIError{Code: payload.Error.Code, Message: payload.Error.Message}
	}

	record, err := payload.toRecord()
	if err != nil {
		return domain.ForecastRecord{}, err
	}
	record.FetchedOn = c.clock.Now()
	return record, nil
}

func (c *Client) forecastURL(city string) string {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("q", city)
	params.Set("days", strconv.Itoa(domain.ForecastDays))
	params.Set("aqi", "no")
	params.Set("alerts", "no")
	return c.baseURL + "/forecast.json?" + params.Encode()
}

func limitRedirects(_ *http.Request, via []*http.Request) error {
	if len(via) >= domain.MaxRedirects {
		return domain.ErrTooManyRedirects
	}
	return nil
}

// classifyTransportError maps client failures onto the domain error kinds.
func classifyTransportError(err error) error {
	if errors.Is(err, domain.ErrTooManyRedirects) {
		return domain.ErrTooManyRedirects
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.ErrNetworkTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return domain.ErrNetworkTimeout
	}
	return &domain.TransportError{Err: err}
}

// errorMessage extracts error.message from a rejected response, if present.
func errorMessage(body []byte) string {
	var payload struct {
		Error *apiError `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.Error == nil {
		return ""
	}
	return payload.Error.Message
}

var _ ports.ForecastSource = (*Client)(nil)
