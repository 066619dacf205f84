package connectors

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	SymbolValidationEnabled bool   `envconfig:"SYMBOL_VALIDATION_ENABLED" default:"false"`
	YahooBaseURL            string `envconfig:"YAHOO_FINANCE_BASE_URL" default:"https://query1.finance.yahoo.com"`
	YahooTimeoutSeconds     int    `envconfig:"YAHOO_FINANCE_TIMEOUT_SECONDS" default:"10"`
	YahooRetryCount         int    `envconfig:"YAHOO_FINANCE_RETRY_COUNT" default:"2"`
}

func GetConfig() Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return config
}
