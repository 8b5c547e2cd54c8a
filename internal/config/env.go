package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds runtime settings sourced from environment variables.
// Everything has a working default so the binary runs with a bare environment.
type Env struct {
	// Port is the localhost port for the congratulation feed server.
	Port string `env:"CONTACTS_PORT" envDefault:"18080"`

	// Language selects the message catalog (ISO 639-1).
	Language string `env:"CONTACTS_LANG" envDefault:"en"`

	// FeedWindowDays is the horizon of the served congratulation feed.
	FeedWindowDays int `env:"CONTACTS_FEED_WINDOW" envDefault:"7"`

	// ServeFeed enables the HTTP feed server.
	ServeFeed bool `env:"CONTACTS_SERVE" envDefault:"false"`

	// WebUser and WebPass are the default credentials for import-url.
	// WebPass is unset from the process environment after parsing; the
	// keyring is the preferred storage (see the remember command).
	WebUser string `env:"CONTACTS_WEB_USER"`
	WebPass string `env:"CONTACTS_WEB_PASS,unset"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("%s: %w", ErrEnvParse, err)
	}
	return e, nil
}
