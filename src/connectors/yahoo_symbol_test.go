package connectors

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestValidator(srv *httptest.Server) *YahooSymbolValidator {
	return NewYahooSymbolValidator(Config{
		YahooBaseURL:        srv.URL,
		YahooTimeoutSeconds: 2,
		YahooRetryCount:     0,
	})
}

func TestYahooSymbolValidatorKnownSymbol(t *testing.T) {
	var gotSymbols string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != quotePath {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotSymbols = r.URL.Query().Get("symbols")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"quoteResponse":{"result":[{"symbol":"AAPL"}],"error":null}}`))
	}))
	defer srv.Close()

	ok, err := newTestValidator(srv).IsValid(context.Background(), " aapl ", "stock")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected symbol to be valid")
	}
	if gotSymbols != "AAPL" {
		t.Fatalf("expected normalized symbol AAPL, got %q", gotSymbols)
	}
}

func TestYahooSymbolValidatorUnknownSymbol(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"quoteResponse":{"result":[],"error":null}}`))
	}))
	defer srv.Close()

	ok, err := newTestValidator(srv).IsValid(context.Background(), "ZZZZNOPE", "stock")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected symbol to be invalid")
	}
}

func TestYahooSymbolValidatorUpstreamFailureIsInvalid(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	ok, err := newTestValidator(srv).IsValid(context.Background(), "AAPL", "stock")
	if err != nil {
		t.Fatalf("upstream failure must not surface as an error, got %v", err)
	}
	if ok {
		t.Fatal("expected failed lookup to count as invalid")
	}
}

func TestYahooSymbolValidatorSkipsNonStocks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("non-stock assets must not hit the quote API")
	}))
	defer srv.Close()

	for _, assetType := range []string{"crypto", "forex", "index", "other"} {
		ok, err := newTestValidator(srv).IsValid(context.Background(), "ANYTHING", assetType)
		if err != nil || !ok {
			t.Fatalf("expected %s symbols to pass, got ok=%v err=%v", assetType, ok, err)
		}
	}
}

func TestYahooSymbolValidatorEmptySymbol(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("blank symbols must not hit the quote API")
	}))
	defer srv.Close()

	ok, err := newTestValidator(srv).IsValid(context.Background(), "   ", "stock")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected blank symbol to be invalid")
	}
}
