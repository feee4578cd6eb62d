package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func TestGeocodeParsesFirstResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "12 Main St" {
			t.Fatalf("unexpected query %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"lat":"31.95","lon":"35.91"}]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, zap.NewNop())
	coords, err := client.Geocode(context.Background(), "12 Main St")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if coords == nil || coords.Lat != 31.95 || coords.Lng != 35.91 {
		t.Fatalf("unexpected coordinates: %+v", coords)
	}
}

func TestGeocodeNoMatchReturnsNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, zap.NewNop())
	coords, err := client.Geocode(context.Background(), "nowhere at all")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if coords != nil {
		t.Fatalf("expected nil coordinates, got %+v", coords)
	}
}

func TestGeocodeUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, zap.NewNop())
	if _, err := client.Geocode(context.Background(), "12 Main St"); err == nil {
		t.Fatal("expected error for upstream failure")
	}
}

func TestGeocodeMalformedCoordinates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"lat":"not-a-number","lon":"35.91"}]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, zap.NewNop())
	if _, err := client.Geocode(context.Background(), "12 Main St"); err == nil {
		t.Fatal("expected error for malformed latitude")
	}
}
