package qabot

import (
	"errors"
	"net/http"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultWelcomeMessage greets the user when the embedder does not supply
// its own.
const DefaultWelcomeMessage = "Hello! What can I help you with?"

// DefaultFollowUpDelay is how long after an answer the follow-up nudge is
// injected.
const DefaultFollowUpDelay = 100 * time.Millisecond

// Config is the embedder-facing widget configuration.
type Config struct {
	// Endpoint is the Q&A backend URL. Required unless the widget starts
	// gated (not logged in and anonymous access disallowed).
	Endpoint string
	// RatingEndpoint enables the thumbs-up/down affordance when set.
	RatingEndpoint string
	APIKey         string
	// ActingUser is forwarded to the backend for per-user attribution.
	ActingUser string
	LoginURL   string

	IsLoggedIn     bool
	AllowAnonymous bool

	WelcomeMessage string
	PageURL        string
	Embedded       bool

	// OnAnalyticsEvent receives enriched widget events. Optional.
	OnAnalyticsEvent AnalyticsFunc

	// KV backs the persistent session store. Defaults to an in-memory KV.
	KV KV

	MaxTotalMessages int
	SettleDelay      time.Duration
	FollowUpDelay    time.Duration
	HTTPClient       *http.Client
}

// FileConfig is the YAML configuration the CLI host reads.
type FileConfig struct {
	Endpoint       string `yaml:"endpoint"`
	RatingEndpoint string `yaml:"rating_endpoint"`
	APIKey         string `yaml:"api_key"`
	ActingUser     string `yaml:"acting_user"`
	LoginURL       string `yaml:"login_url"`
	StorePath      string `yaml:"store_path"`
	WelcomeMessage string `yaml:"welcome_message"`
	PageURL        string `yaml:"page_url"`
}

// LoadConfigFile reads a YAML config. A missing file is not an error; the
// zero config is returned and flags fill in the rest.
func LoadConfigFile(path string) (FileConfig, error) {
	var cfg FileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
