package opml

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mwren/radiola/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewTLSServer(handler)
	t.Cleanup(srv.Close)
	return NewClientWithHTTP(srv.Client(), nil), srv
}

func TestFetchSuccess(t *testing.T) {
	client, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<opml><body>
			<outline type="audio" text="NPR" URL="https://npr.example/live"/>
		</body></opml>`))
	})

	listing, err := client.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(listing) != 1 || listing[0].Title != "NPR" || !listing[0].IsStream() {
		t.Fatalf("unexpected listing: %+v", listing)
	}
}

func TestFetchNotFound(t *testing.T) {
	client, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	_, err := client.Fetch(context.Background(), srv.URL+"/missing")
	var fetchErr *domain.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("got %v, want FetchError", err)
	}
}

func TestFetchMalformed(t *testing.T) {
	client, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not opml"))
	})

	_, err := client.Fetch(context.Background(), srv.URL)
	var parseErr *domain.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("got %v, want ParseError", err)
	}
}

func TestFetchUnreachable(t *testing.T) {
	client := NewClientWithHTTP(&http.Client{}, nil)
	_, err := client.Fetch(context.Background(), "https://127.0.0.1:1/opml")
	var fetchErr *domain.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("got %v, want FetchError", err)
	}
}
