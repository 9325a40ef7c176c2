package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/skyglance/weather/internal/domain"
)

const (
	msgLocationFailed    = "Could not detect location"
	msgPrivateIPFallback = "Cannot detect location from private IP"
	msgEnterManually     = ". Please enter your city manually."
)

// LocationService resolves IP addresses via ip-api.com
type LocationService struct {
	baseURL    string
	httpClient *http.Client
}

// NewLocationService creates a new location service
func NewLocationService(baseURL string, httpClient *http.Client) *LocationService {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &LocationService{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// ipAPIResponse is the subset of the ip-api.com JSON we use
type ipAPIResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	City    string  `json:"city"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// Locate resolves ip. With an empty ip, ip-api geolocates the address the
// request comes from, i.e. this server's public IP.
func (s *LocationService) Locate(ctx context.Context, ip string) (domain.Location, error) {
	ctx, span := otel.Tracer("location-service").Start(ctx, "ip-api: locate")
	defer span.End()
	span.SetAttributes(attribute.Bool("ip.provided", ip != ""))

	endpoint := s.baseURL
	if ip != "" {
		endpoint += "/" + url.PathEscape(ip)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create request")
		return domain.Location{}, fmt.Errorf("location: failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return domain.Location{}, upstreamErr("Network error: "+err.Error(), err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("ip-api returned status %d", resp.StatusCode)
		span.RecordError(err)
		span.SetStatus(codes.Error, "unexpected status")
		return domain.Location{}, upstreamErr("Network error: "+err.Error(), err)
	}

	var body ipAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to decode response")
		return domain.Location{}, upstreamErr("Unexpected error: "+err.Error(), err)
	}

	switch body.Status {
	case "success":
		span.SetStatus(codes.Ok, "")
		return domain.Location{
			City:    body.City,
			Country: body.Country,
			Lat:     body.Lat,
			Lon:     body.Lon,
		}, nil
	case "fail":
		// ip-api reports "fail" for private and reserved ranges
		msg := body.Message
		if msg == "" {
			msg = msgPrivateIPFallback
		}
		span.SetStatus(codes.Error, msg)
		return domain.Location{}, upstreamErr(msg+msgEnterManually, nil)
	default:
		span.SetStatus(codes.Error, "unknown status")
		return domain.Location{}, upstreamErr(msgLocationFailed, nil)
	}
}
