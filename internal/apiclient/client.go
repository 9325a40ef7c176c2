// Package apiclient talks to the weather backend over HTTP.
package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/skyglance/weather/internal/domain"
	"github.com/skyglance/weather/internal/logger"
	"github.com/skyglance/weather/internal/telemetry"
)

// RequestIDHeader carries the per-call correlation ID
const RequestIDHeader = "X-Request-ID"

// maxBodySize bounds how much of a response is read
const maxBodySize = 1 << 20

// Client calls the backend's /api/location and /api/weather endpoints.
//
// A response is decoded regardless of its status code, so a 400 carrying
// {"success":false,"error":...} comes back as a result with a nil error.
// Only failures to get a JSON body at all are returned as errors.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

// New creates a client for the backend at baseURL. A zero timeout disables
// the per-request deadline.
func New(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Discard()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: telemetry.Transport(nil),
		},
		log: log,
	}
}

// Location asks the backend to geolocate the caller
func (c *Client) Location(ctx context.Context) (domain.LocationResult, error) {
	var res domain.LocationResult
	err := c.get(ctx, "location", "/api/location", nil, &res)
	return res, err
}

// WeatherByCoordinates fetches weather for a coordinate pair
func (c *Client) WeatherByCoordinates(ctx context.Context, lat, lon float64) (domain.WeatherResult, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))

	var res domain.WeatherResult
	err := c.get(ctx, "weather", "/api/weather", q, &res)
	return res, err
}

// WeatherByCity fetches weather for a city name
func (c *Client) WeatherByCity(ctx context.Context, city string) (domain.WeatherResult, error) {
	q := url.Values{}
	q.Set("city", city)

	var res domain.WeatherResult
	err := c.get(ctx, "weather", "/api/weather", q, &res)
	return res, err
}

// Health checks that the backend is reachable
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("apiclient: failed to create health request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("apiclient: health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("apiclient: health check returned status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) get(ctx context.Context, name, path string, query url.Values, out any) (err error) {
	ctx, span := otel.Tracer("apiclient").Start(ctx, "apiclient."+name,
		trace.WithSpanKind(trace.SpanKindClient),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("apiclient: failed to build %s request: %w", name, err)
	}
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	span.SetAttributes(attribute.String("request.id", requestID))

	log := c.log.WithRequestID(requestID)
	log.Debug("calling backend", "endpoint", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("apiclient: %s request failed: %w", name, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("apiclient: failed to read %s response: %w", name, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("apiclient: %s returned non-JSON body (status %d): %w", name, resp.StatusCode, err)
	}

	log.Debug("backend responded", "endpoint", path, "status", resp.StatusCode)
	return nil
}
