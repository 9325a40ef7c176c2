package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/skyglance/weather/internal/domain"
	"github.com/skyglance/weather/internal/logger"
)

func TestLocationServiceLocate(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"status":"success","city":"Berlin","country":"Germany","lat":52.52,"lon":13.405}`))
	}))
	defer srv.Close()

	svc := NewLocationService(srv.URL+"/json", srv.Client())

	loc, err := svc.Locate(context.Background(), "81.2.69.142")
	if err != nil {
		t.Fatalf("Locate failed: %v", err)
	}
	if gotPath != "/json/81.2.69.142" {
		t.Fatalf("expected ip in path, got %q", gotPath)
	}
	if loc.City != "Berlin" || loc.Lat != 52.52 || loc.Lon != 13.405 {
		t.Fatalf("unexpected location: %+v", loc)
	}

	if _, err := svc.Locate(context.Background(), ""); err != nil {
		t.Fatalf("Locate without ip failed: %v", err)
	}
	if gotPath != "/json" {
		t.Fatalf("expected bare path without ip, got %q", gotPath)
	}
}

func TestLocationServiceFailures(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"fail with message", `{"status":"fail","message":"reserved range"}`, "reserved range. Please enter your city manually."},
		{"fail without message", `{"status":"fail"}`, "Cannot detect location from private IP. Please enter your city manually."},
		{"unknown status", `{"status":"weird"}`, "Could not detect location"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := NewLocationService(srv.URL, srv.Client()).Locate(context.Background(), "")

			var upErr *UpstreamError
			if !errors.As(err, &upErr) {
				t.Fatalf("expected UpstreamError, got %v", err)
			}
			if upErr.Message != tc.wantMsg {
				t.Fatalf("expected %q, got %q", tc.wantMsg, upErr.Message)
			}
		})
	}
}

type fakeLocator struct {
	gotIP string
	loc   domain.Location
	err   error
}

func (f *fakeLocator) Locate(_ context.Context, ip string) (domain.Location, error) {
	f.gotIP = ip
	return f.loc, f.err
}

func TestLookupServicePrivateIPUsesServerAddress(t *testing.T) {
	loc := &fakeLocator{loc: domain.Location{City: "Oslo", Lat: 59.9, Lon: 10.7}}
	svc := NewLookupService(loc, NewWeatherService("", "", nil), logger.Discard())

	if _, err := svc.Locate(context.Background(), "192.168.0.10"); err != nil {
		t.Fatalf("Locate failed: %v", err)
	}
	if loc.gotIP != "" {
		t.Fatalf("expected private ip to be replaced by empty ip, got %q", loc.gotIP)
	}

	if _, err := svc.Locate(context.Background(), "8.8.8.8"); err != nil {
		t.Fatalf("Locate failed: %v", err)
	}
	if loc.gotIP != "8.8.8.8" {
		t.Fatalf("expected public ip to be passed through, got %q", loc.gotIP)
	}
}

func TestNewWeatherReading(t *testing.T) {
	r := NewWeatherReading(domain.Weather{
		City: "Paris", Country: "FR", Main: "Clear", Description: "Clear",
		Temperature: 22, FeelsLike: 21, Humidity: 40, WindSpeed: 3.2,
		WindDeg: 315, Visibility: 10, Pressure: 1013,
	})

	if r.Temperature.String() != "22" || r.WindSpeed.String() != "3.2" || r.Pressure.String() != "1013" {
		t.Fatalf("unexpected numeric text: %q %q %q", r.Temperature, r.WindSpeed, r.Pressure)
	}
	if r.WindDirection != "NW" || r.Emoji != "☀️" {
		t.Fatalf("expected NW and sun emoji, got %q %q", r.WindDirection, r.Emoji)
	}
}
