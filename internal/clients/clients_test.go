package clients

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/edupanel/enrollcore/internal/errs"
)

func TestGetCourseModules_OK(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/courses/crs-1/modules" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"course_id": "crs-1",
			"modules":   []string{"m1", "m2", "m3"},
		})
	}))
	defer ts.Close()

	client := NewCatalogClient(ts.URL)
	modules, err := client.GetCourseModules(context.Background(), "crs-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(modules) != 3 || modules[0] != "m1" {
		t.Errorf("unexpected modules: %v", modules)
	}
}

func TestGetCourseModules_NotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	client := NewCatalogClient(ts.URL)
	_, err := client.GetCourseModules(context.Background(), "missing")
	if !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGetOffer_OK(t *testing.T) {
	validUntil := time.Now().Add(time.Hour).Truncate(time.Second)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":              "off-1",
			"valid_until":     validUntil,
			"seats_available": 5,
		})
	}))
	defer ts.Close()

	client := NewOfferClient(ts.URL)
	offer, err := client.GetOffer(context.Background(), "off-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if offer.SeatsAvailable != 5 {
		t.Errorf("expected 5 seats, got %d", offer.SeatsAvailable)
	}
	if !offer.ValidUntil.Equal(validUntil) {
		t.Errorf("expected valid until %s, got %s", validUntil, offer.ValidUntil)
	}
}

func TestGetOffer_NotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	client := NewOfferClient(ts.URL)
	_, err := client.GetOffer(context.Background(), "missing")
	if !errors.Is(err, errs.ErrOfferInvalid) {
		t.Errorf("expected ErrOfferInvalid, got %v", err)
	}
}

func TestDecrementSeat(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{"ok", http.StatusOK, nil},
		{"exhausted", http.StatusConflict, errs.ErrOfferInvalid},
		{"missing", http.StatusNotFound, errs.ErrOfferInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Errorf("expected POST, got %s", r.Method)
				}
				w.WriteHeader(tt.status)
			}))
			defer ts.Close()

			client := NewOfferClient(ts.URL)
			err := client.DecrementSeat(context.Background(), "off-1")

			if tt.wantErr == nil && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
