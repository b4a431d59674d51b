package oracle

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHTTPSource_FetchDirect(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, directPayload)
	}))
	t.Cleanup(ts.Close)

	src := NewHTTPSource(ts.URL, time.Second, testLogger())
	rec, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if rec != wantRecord {
		t.Errorf("record = %+v, want %+v", rec, wantRecord)
	}
}

func TestHTTPSource_FetchGatewayShape(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"status":"ok","krypton":%s}`, directPayload)
	}))
	t.Cleanup(ts.Close)

	src := NewHTTPSource(ts.URL, time.Second, testLogger())
	rec, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if rec != wantRecord {
		t.Errorf("record = %+v, want %+v", rec, wantRecord)
	}
}

func TestHTTPSource_ErrorStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "pool exhausted", http.StatusInternalServerError)
	}))
	t.Cleanup(ts.Close)

	src := NewHTTPSource(ts.URL, time.Second, testLogger())
	if _, err := src.Fetch(context.Background()); !errors.Is(err, ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
}

func TestHTTPSource_ConnectionRefused(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := ts.URL
	ts.Close()

	src := NewHTTPSource(url, time.Second, testLogger())
	if _, err := src.Fetch(context.Background()); !errors.Is(err, ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
}

func TestHTTPSource_MalformedBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html>not the oracle</html>")
	}))
	t.Cleanup(ts.Close)

	src := NewHTTPSource(ts.URL, time.Second, testLogger())
	if _, err := src.Fetch(context.Background()); !errors.Is(err, ErrMalformed) {
		t.Errorf("err = %v, want ErrMalformed", err)
	}
}
