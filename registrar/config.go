package registrar

import (
	"github.com/effective-security/x/configloader"
)

// DefaultBaseURL is the production registrar origin, used when neither the
// config file nor the flags override it.
const DefaultBaseURL = "https://api.lobster.domains"

// TokenPrefix is the textual prefix of issued management tokens. It exists
// for user-facing display only; tokens are opaque and never parsed beyond
// non-emptiness.
const TokenPrefix = "lobster_"

// Config for the registrar client.
type Config struct {
	// BaseURL overrides the registrar origin, e.g. to point at a staging
	// or mock backend.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
}

// LoadConfig from file. An empty file name returns the zero config.
func LoadConfig(file string) (*Config, error) {
	cfg := new(Config)
	if file == "" {
		return cfg, nil
	}

	err := configloader.UnmarshalAndExpand(file, cfg)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}
