package rates

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vistonomade/pkg/types"

	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestClient_Quote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/EUR-BRL" {
			t.Errorf("path = %q, want /EUR-BRL", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"EURBRL":{"code":"EUR","codein":"BRL","bid":"6.2512","ask":"6.2581","create_date":"2026-08-28 10:00:00"}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	quote, err := client.Quote(context.Background(), "EUR-BRL")
	if err != nil {
		t.Fatal(err)
	}

	if quote.Pair != "EUR-BRL" {
		t.Errorf("pair = %q, want EUR-BRL", quote.Pair)
	}
	if quote.Bid != 6.2512 {
		t.Errorf("bid = %v, want 6.2512", quote.Bid)
	}
	if quote.Ask != 6.2581 {
		t.Errorf("ask = %v, want 6.2581", quote.Ask)
	}
}

func TestClient_QuoteErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			"server error",
			func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "nope", http.StatusBadGateway)
			},
		},
		{
			"missing pair in payload",
			func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"USDBRL":{"bid":"5.1","ask":"5.2"}}`))
			},
		},
		{
			"malformed bid",
			func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"EURBRL":{"bid":"not-a-number","ask":"6.2"}}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			client := NewClient(srv.URL)
			if _, err := client.Quote(context.Background(), "EUR-BRL"); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

type scriptedFetcher struct {
	quotes []*types.ExchangeRate
	errs   []error
	calls  int
}

func (f *scriptedFetcher) Quote(_ context.Context, pair string) (*types.ExchangeRate, error) {
	i := f.calls
	f.calls++
	if i >= len(f.quotes) {
		i = len(f.quotes) - 1
	}
	return f.quotes[i], f.errs[i]
}

func TestPoller_KeepsStaleQuoteOnFailure(t *testing.T) {
	first := &types.ExchangeRate{Pair: "EUR-BRL", Bid: 6.25, Ask: 6.26, FetchedAt: time.Now()}
	fetcher := &scriptedFetcher{
		quotes: []*types.ExchangeRate{first, nil},
		errs:   []error{nil, errors.New("api down")},
	}

	p := NewPoller("EUR-BRL", time.Minute, fetcher, nil, quietLogger())

	p.refresh(context.Background())
	rate, ok := p.Rate()
	if !ok || rate.Bid != 6.25 {
		t.Fatalf("Rate() = %+v, %v after first refresh", rate, ok)
	}

	p.refresh(context.Background())
	rate, ok = p.Rate()
	if !ok {
		t.Fatal("rate disappeared after failed refresh")
	}
	if rate.Bid != 6.25 {
		t.Errorf("bid = %v, want stale 6.25", rate.Bid)
	}
}

func TestPoller_NoQuoteBeforeFirstRefresh(t *testing.T) {
	p := NewPoller("EUR-BRL", time.Minute, &scriptedFetcher{
		quotes: []*types.ExchangeRate{nil},
		errs:   []error{errors.New("down")},
	}, nil, quietLogger())

	if _, ok := p.Rate(); ok {
		t.Error("Rate() reported a quote before any successful refresh")
	}
}
