package rates

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestLatestSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/EUR" {
			t.Errorf("path = %q, want /EUR", r.URL.Path)
		}
		w.Write([]byte(`{"result":"success","rates":{"EUR":1,"USD":1.08,"GBP":0.85}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, srv.Client())
	got, err := c.Latest(context.Background(), "eur")
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if got["USD"] != 1.08 {
		t.Fatalf("USD rate = %v, want 1.08", got["USD"])
	}
}

func TestLatestServedFromCache(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"result":"success","rates":{"EUR":1}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, srv.Client())
	ctx := context.Background()
	if _, err := c.Latest(ctx, "EUR"); err != nil {
		t.Fatalf("first Latest: %v", err)
	}
	if _, err := c.Latest(ctx, "EUR"); err != nil {
		t.Fatalf("second Latest: %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("upstream calls = %d, want 1", calls.Load())
	}
}

func TestLatestUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":"error","error-type":"unsupported-code"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, srv.Client())
	if _, err := c.Latest(context.Background(), "XXX"); err == nil {
		t.Fatal("Latest returned nil error for upstream failure")
	}
}

func TestLatestHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(srv.URL, srv.Client())
	if _, err := c.Latest(context.Background(), "EUR"); err == nil {
		t.Fatal("Latest returned nil error for HTTP 502")
	}
}

func TestLatestEmptyBase(t *testing.T) {
	c := New("", nil)
	if _, err := c.Latest(context.Background(), "  "); err == nil {
		t.Fatal("Latest returned nil error for blank base currency")
	}
}
