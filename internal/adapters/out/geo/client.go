// Package geo talks to the geo service that measures delivery distances and
// matches addresses to delivery zones. A local haversine calculator stands in
// when no geo service is configured.
package geo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"

	"github.com/sony/gobreaker/v2"
)

const serviceName = "geo"

type Config struct {
	BaseURL string
	Timeout time.Duration
	// FailureThreshold is how many consecutive failures open the breaker.
	FailureThreshold uint32
	// OpenTimeout is how long the breaker stays open before a trial request.
	OpenTimeout time.Duration
}

// Client calls the geo service over HTTP behind a circuit breaker. Every
// failure, including an open breaker, is reported as
// errs.ServiceUnavailableError; a cancelled context is returned as is.
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[[]byte]
	logger     *slog.Logger
}

var (
	_ ports.DistanceCalculator = (*Client)(nil)
	_ ports.ZoneResolver       = (*Client)(nil)
)

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 30 * time.Second
	}
	logger = logger.With("component", "GeoClient")

	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        serviceName,
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		breaker:    breaker,
		logger:     logger,
	}
}

type point struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

type distanceRequest struct {
	StoreID     string `json:"storeId"`
	Origin      point  `json:"origin"`
	Destination point  `json:"destination"`
}

type distanceResponse struct {
	Price       float64 `json:"price"`
	DistanceKm  float64 `json:"distanceKm"`
	Method      string  `json:"method"`
	WithinRange bool    `json:"withinRange"`
	Message     string  `json:"message"`
}

type zoneResponse struct {
	ZoneID string `json:"zoneId"`
	Found  bool   `json:"found"`
}

func (c *Client) CalculateDeliveryPrice(
	ctx context.Context,
	origin kernel.Coordinates,
	destination kernel.Coordinates,
	storeID kernel.UUID,
) (ports.DistanceEstimate, error) {
	body, err := json.Marshal(distanceRequest{
		StoreID:     storeID.String(),
		Origin:      point{Latitude: origin.Latitude(), Longitude: origin.Longitude()},
		Destination: point{Latitude: destination.Latitude(), Longitude: destination.Longitude()},
	})
	if err != nil {
		return ports.DistanceEstimate{}, err
	}

	data, err := c.call(ctx, http.MethodPost, c.baseURL+"/api/v1/delivery/price", body)
	if err != nil {
		return ports.DistanceEstimate{}, err
	}

	var resp distanceResponse
	if err = json.Unmarshal(data, &resp); err != nil {
		return ports.DistanceEstimate{}, errs.NewServiceUnavailableErrorWithCause(serviceName,
			fmt.Errorf("decode distance response: %w", err))
	}

	return ports.DistanceEstimate{
		Price:       resp.Price,
		DistanceKm:  resp.DistanceKm,
		Method:      resp.Method,
		WithinRange: resp.WithinRange,
		Message:     resp.Message,
	}, nil
}

func (c *Client) ResolveZone(
	ctx context.Context,
	storeID kernel.UUID,
	destination kernel.Coordinates,
) (string, bool, error) {
	query := url.Values{}
	query.Set("lat", strconv.FormatFloat(destination.Latitude(), 'f', -1, 64))
	query.Set("lng", strconv.FormatFloat(destination.Longitude(), 'f', -1, 64))
	endpoint := fmt.Sprintf("%s/api/v1/stores/%s/zones/resolve?%s", c.baseURL, storeID.String(), query.Encode())

	data, err := c.call(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", false, err
	}

	var resp zoneResponse
	if err = json.Unmarshal(data, &resp); err != nil {
		return "", false, errs.NewServiceUnavailableErrorWithCause(serviceName,
			fmt.Errorf("decode zone response: %w", err))
	}
	if !resp.Found || resp.ZoneID == "" {
		return "", false, nil
	}
	return resp.ZoneID, true, nil
}

func (c *Client) call(ctx context.Context, method, endpoint string, body []byte) ([]byte, error) {
	data, err := c.breaker.Execute(func() ([]byte, error) {
		return c.do(ctx, method, endpoint, body)
	})
	if err == nil {
		return data, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}

	c.logger.WarnContext(ctx, "Geo service call failed",
		"method", method,
		"endpoint", endpoint,
		"error", err,
	)
	return nil, errs.NewServiceUnavailableErrorWithCause(serviceName, err)
}

func (c *Client) do(ctx context.Context, method, endpoint string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geo: status %d: %s", resp.StatusCode, bytes.TrimSpace(data))
	}
	return data, nil
}
