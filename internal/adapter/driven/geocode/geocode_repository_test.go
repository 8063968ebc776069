package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSearchParsesFirstCandidate(t *testing.T) {
	var gotQuery, gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotAgent = r.Header.Get("User-Agent")
		if r.URL.Query().Get("format") != "json" || r.URL.Query().Get("limit") != "1" {
			t.Errorf("unexpected query params: %v", r.URL.Query())
		}
		w.Write([]byte(`[{"lat":"-33.8688","lon":"151.2093"},{"lat":"0","lon":"0"}]`))
	}))
	defer server.Close()

	repo := NewNominatimRepository(server.URL)
	coords, err := repo.Search(context.Background(), "1 Pitt St Sydney", time.Second)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if gotQuery != "1 Pitt St Sydney" {
		t.Errorf("address must travel as q, got %q", gotQuery)
	}
	if gotAgent == "" {
		t.Error("a User-Agent header is required by the service")
	}
	if coords.Latitude == nil || *coords.Latitude != -33.8688 || *coords.Longitude != 151.2093 {
		t.Errorf("unexpected coordinates: %+v", coords)
	}
}

func TestSearchEmptyResultIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	repo := NewNominatimRepository(server.URL)
	if _, err := repo.Search(context.Background(), "nowhere", time.Second); err == nil {
		t.Fatal("an empty candidate list must be an error")
	}
}

func TestSearchNonOKStatusIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "over quota", http.StatusTooManyRequests)
	}))
	defer server.Close()

	repo := NewNominatimRepository(server.URL)
	if _, err := repo.Search(context.Background(), "anywhere", time.Second); err == nil {
		t.Fatal("non-200 status must be an error")
	}
}

func TestSearchTimeout(t *testing.T) {
	block := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer server.Close()
	defer close(block)

	repo := NewNominatimRepository(server.URL)
	start := time.Now()
	_, err := repo.Search(context.Background(), "slow town", 50*time.Millisecond)
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("timeout should bound the call, took %v", elapsed)
	}
}

func TestSearchBadPayloadIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not":"a list"}`))
	}))
	defer server.Close()

	repo := NewNominatimRepository(server.URL)
	if _, err := repo.Search(context.Background(), "anywhere", time.Second); err == nil {
		t.Fatal("undecodable payload must be an error")
	}
}
