package auth

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// Bcrypt hash of the accepted API token. Empty disables the middleware
	// check entirely (local development).
	APITokenHash string `envconfig:"API_TOKEN_HASH" default:""`
	OwnerUserID  string `envconfig:"OWNER_USER_ID" default:"00000000-0000-0000-0000-000000000001"`
	OwnerEmail   string `envconfig:"OWNER_EMAIL" default:"owner@localhost"`
}

func GetConfig() Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return config
}
