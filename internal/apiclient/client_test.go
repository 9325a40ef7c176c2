package apiclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

type recorded struct {
	mu    sync.Mutex
	url   url.URL
	reqID string
}

func newBackend(t *testing.T, status int, contentType, body string) (*httptest.Server, *recorded) {
	t.Helper()
	rec := &recorded{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.mu.Lock()
		rec.url = *r.URL
		rec.reqID = r.Header.Get(RequestIDHeader)
		rec.mu.Unlock()
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func TestLocationSuccess(t *testing.T) {
	srv, rec := newBackend(t, http.StatusOK, "application/json",
		`{"success":true,"city":"Paris","country":"France","lat":48.85,"lon":2.35}`)

	res, err := New(srv.URL, time.Second, nil).Location(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Success || res.City != "Paris" || res.Lat == nil || *res.Lat != 48.85 || res.Lon == nil || *res.Lon != 2.35 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if rec.url.Path != "/api/location" {
		t.Fatalf("expected /api/location, got %s", rec.url.Path)
	}
	if _, err := uuid.Parse(rec.reqID); err != nil {
		t.Fatalf("expected a uuid request id, got %q", rec.reqID)
	}
}

func TestApplicationErrorIsDecodedNotReturned(t *testing.T) {
	srv, _ := newBackend(t, http.StatusBadRequest, "application/json",
		`{"success":false,"error":"City not found"}`)

	res, err := New(srv.URL, time.Second, nil).WeatherByCity(context.Background(), "Atlantis")
	if err != nil {
		t.Fatalf("a JSON error body must not be a transport error: %v", err)
	}
	if res.Success || res.Error != "City not found" || res.Data != nil {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestNonJSONBodyIsError(t *testing.T) {
	srv, _ := newBackend(t, http.StatusBadGateway, "text/html", "<html>Bad Gateway</html>")

	if _, err := New(srv.URL, time.Second, nil).WeatherByCity(context.Background(), "Paris"); err == nil {
		t.Fatalf("expected error for HTML body")
	}
}

func TestNetworkFailureIsError(t *testing.T) {
	srv, _ := newBackend(t, http.StatusOK, "application/json", `{}`)
	base := srv.URL
	srv.Close()

	if _, err := New(base, time.Second, nil).Location(context.Background()); err == nil {
		t.Fatalf("expected error when backend is down")
	}
}

func TestTimeoutIsError(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	if _, err := New(srv.URL, 50*time.Millisecond, nil).Location(context.Background()); err == nil {
		t.Fatalf("expected timeout error")
	}
}

func TestCityIsEscaped(t *testing.T) {
	srv, rec := newBackend(t, http.StatusOK, "application/json",
		`{"success":true,"data":{"city":"São Paulo","temperature":25}}`)

	res, err := New(srv.URL+"/", time.Second, nil).WeatherByCity(context.Background(), "São Paulo & co")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := rec.url.Query().Get("city"); got != "São Paulo & co" {
		t.Fatalf("city did not round-trip, got %q (raw %q)", got, rec.url.RawQuery)
	}
	if rec.url.Path != "/api/weather" {
		t.Fatalf("expected /api/weather, got %s", rec.url.Path)
	}
	if res.Data == nil || res.Data.Temperature.String() != "25" {
		t.Fatalf("expected verbatim temperature, got %+v", res.Data)
	}
}

func TestCoordinatesQuery(t *testing.T) {
	srv, rec := newBackend(t, http.StatusOK, "application/json", `{"success":true,"data":{"city":"Paris"}}`)

	if _, err := New(srv.URL, time.Second, nil).WeatherByCoordinates(context.Background(), 48.8566, -2.5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	q := rec.url.Query()
	if q.Get("lat") != "48.8566" || q.Get("lon") != "-2.5" {
		t.Fatalf("unexpected query: %s", rec.url.RawQuery)
	}
	if q.Has("city") {
		t.Fatalf("coordinate lookup must not send a city")
	}
}

func TestHealth(t *testing.T) {
	srv, rec := newBackend(t, http.StatusOK, "application/json", `{"status":"ok"}`)
	if err := New(srv.URL, time.Second, nil).Health(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.url.Path != "/health" {
		t.Fatalf("expected /health, got %s", rec.url.Path)
	}

	down, _ := newBackend(t, http.StatusServiceUnavailable, "text/plain", "down")
	if err := New(down.URL, time.Second, nil).Health(context.Background()); err == nil {
		t.Fatalf("expected error for 503")
	}
}
