package connectors

// Symbol validation against Yahoo Finance quotes. Only stock symbols are
// checked; other asset classes have no authoritative source here and pass.

import (
	"context"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	logger "github.com/sirupsen/logrus"
)

const quotePath = "/v7/finance/quote"

type yahooQuoteResponse struct {
	QuoteResponse struct {
		Result []struct {
			Symbol string `json:"symbol"`
		} `json:"result"`
	} `json:"quoteResponse"`
}

// YahooSymbolValidator resolves symbols through the Yahoo Finance quote API.
type YahooSymbolValidator struct {
	http *resty.Client
}

func NewYahooSymbolValidator(cfg Config) *YahooSymbolValidator {
	baseURL := strings.TrimRight(cfg.YahooBaseURL, "/")

	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(time.Duration(cfg.YahooTimeoutSeconds) * time.Second).
		SetRetryCount(cfg.YahooRetryCount).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(4 * time.Second)

	return &YahooSymbolValidator{http: httpClient}
}

// IsValid reports whether the symbol resolves to a quoted instrument. A
// failed lookup counts as invalid rather than an error.
func (v *YahooSymbolValidator) IsValid(ctx context.Context, symbol, assetType string) (bool, error) {
	if assetType != "stock" {
		return true, nil
	}

	trimmed := strings.ToUpper(strings.TrimSpace(symbol))
	if trimmed == "" {
		return false, nil
	}

	var out yahooQuoteResponse
	resp, err := v.http.R().
		SetContext(ctx).
		SetQueryParam("symbols", trimmed).
		SetResult(&out).
		Get(quotePath)
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"connector": "YahooSymbolValidator",
			"symbol":    trimmed,
		}).WithError(err).Warn("Symbol lookup failed")
		return false, nil
	}
	if resp.IsError() {
		logger.WithFields(map[string]interface{}{
			"connector": "YahooSymbolValidator",
			"symbol":    trimmed,
			"status":    resp.StatusCode(),
		}).Warn("Symbol lookup returned an error status")
		return false, nil
	}

	results := out.QuoteResponse.Result
	return len(results) > 0 && results[0].Symbol != "", nil
}
