package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all configuration for the covidcast service
type Config struct {
	// Server configuration
	Port string `env:"PORT,default=8982"`

	// Data source URLs
	CovidDataURL string `env:"COVID_DATA_URL,default=https://covid19.who.int/WHO-COVID-19-global-data.csv"`
	GDPDataURL   string `env:"GDP_DATA_URL,default=https://api.worldbank.org/v2/en/indicator/NY.GDP.PCAP.CD?downloadformat=csv"`
	NewsRSSURL   string `env:"NEWS_RSS_URL,default=https://www.who.int/rss-feeds/news-english.xml"`

	// Chart configuration
	DefaultCountry string `env:"DEFAULT_COUNTRY,default=United States of America"`
	RollingWindow  int    `env:"ROLLING_WINDOW,default=7"`
	TopCountries   int    `env:"TOP_COUNTRIES,default=15"`

	// Series shown in the country explorer chart, in trace order
	Series []string `env:"SERIES,delimiter= ,default=New_cases New_deaths Cumulative_cases Cumulative_deaths"`

	// OpenAI configuration (optional: commentary falls back to a computed summary)
	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
	OpenAIModel  string `env:"OPENAI_MODEL,default=gpt-4.1"`

	// GCP configuration (optional for local deployment)
	GCPProjectID string `env:"GCP_PROJECT_ID"`
	GCSBucket    string `env:"GCS_BUCKET"`

	// Local deployment configuration
	LocalReportsDir string `env:"LOCAL_REPORTS_DIR,default=./reports"`
	MockupMode      bool   `env:"MOCKUP_MODE,default=false"`

	// Service configuration
	Environment string `env:"ENVIRONMENT,default=development"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations that would produce nonsensical charts
func (c *Config) Validate() error {
	if c.RollingWindow <= 0 {
		return fmt.Errorf("ROLLING_WINDOW must be positive, got %d", c.RollingWindow)
	}
	if c.TopCountries <= 0 {
		return fmt.Errorf("TOP_COUNTRIES must be positive, got %d", c.TopCountries)
	}
	if len(c.Series) == 0 {
		return fmt.Errorf("SERIES must name at least one series")
	}
	for _, s := range c.Series {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("SERIES contains an empty series name")
		}
	}
	return nil
}
