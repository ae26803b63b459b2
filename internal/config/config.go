package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"pvpulse/pkg/contracts/domain"
)

// envPrefix is the prefix for environment variable overrides, e.g.
// PVP_SERVER_PORT or PVP_SOURCE_CSVPATH.
const envPrefix = "PVP"

// Config represents the complete application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server" envconfig:"SERVER"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Source  SourceConfig  `yaml:"source" envconfig:"SOURCE"`
	Crawler CrawlerConfig `yaml:"crawler" envconfig:"CRAWLER"`
	Export  ExportConfig  `yaml:"export" envconfig:"EXPORT"`

	// Catalog is the ordered list of tracked products. It is external
	// configuration; the pipeline tolerates catalogs of any length.
	Catalog []domain.CatalogProduct `yaml:"catalog" envconfig:"-"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" validate:"min=0,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"omitempty,oneof=debug info warn error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"omitempty,oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILEPATH"`
}

// SourceConfig describes where the price CSV lives.
type SourceConfig struct {
	// CSVPath is the local CSV file holding the observation history.
	CSVPath string `yaml:"csv_path" envconfig:"CSVPATH"`
	// URL optionally points at a remote CSV; when set the store fetches it
	// over HTTP instead of reading CSVPath.
	URL string `yaml:"url" envconfig:"URL" validate:"omitempty,url"`
	// FetchTimeout bounds the remote fetch.
	FetchTimeout time.Duration `yaml:"fetch_timeout" envconfig:"FETCHTIMEOUT"`
}

// CrawlerConfig configures the PVOIL price page crawler.
type CrawlerConfig struct {
	PageURL  string        `yaml:"page_url" envconfig:"PAGEURL" validate:"omitempty,url"`
	Headless bool          `yaml:"headless" envconfig:"HEADLESS"`
	Timeout  time.Duration `yaml:"timeout" envconfig:"TIMEOUT"`
	// Schedule is a cron expression; empty means run once and exit.
	Schedule string `yaml:"schedule" envconfig:"SCHEDULE"`
	// RateLimit caps requests per second against the PVOIL site.
	RateLimit float64 `yaml:"rate_limit" envconfig:"RATELIMIT"`
}

// ExportConfig configures report exports.
type ExportConfig struct {
	Dir string `yaml:"dir" envconfig:"DIR"`
}

// DefaultCatalog is the tracked product list as shipped with the dashboard.
// Used when the config file supplies no catalog of its own.
func DefaultCatalog() []domain.CatalogProduct {
	return []domain.CatalogProduct{
		{Name: "Xăng RON 95-III", Code: "ron95", Color: "#EF4444", Icon: "⛽"},
		{Name: "Xăng E5 RON 92-II", Code: "e5", Color: "#3B82F6", Icon: "⛽"},
		{Name: "Dầu DO 0,05S-II", Code: "do", Color: "#10B981", Icon: "🛢️"},
		{Name: "Dầu KO", Code: "ko", Color: "#F59E0B", Icon: "🛢️"},
	}
}

// Load loads configuration from the optional YAML file and environment
// variables. Environment variables take precedence over file values;
// defaults fill whatever remains unset.
func Load(configFile string) (*Config, error) {
	var cfg Config

	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			fileCfg, err := loadFromFile(configFile)
			if err != nil {
				return nil, fmt.Errorf("failed to load config from file: %w", err)
			}
			cfg = *fileCfg
		}
	}

	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyDefaults fills zero-valued fields.
func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15 * time.Second
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 30 * time.Second
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "console"
	}
	if c.Logging.FilePath == "" {
		c.Logging.FilePath = "logs/pvpulse.log"
	}
	if c.Source.CSVPath == "" {
		c.Source.CSVPath = "data/pvoil_gasoline_prices_full.csv"
	}
	if c.Source.FetchTimeout == 0 {
		c.Source.FetchTimeout = 30 * time.Second
	}
	if c.Crawler.PageURL == "" {
		c.Crawler.PageURL = "https://www.pvoil.com.vn/tin-gia-xang-dau"
	}
	if c.Crawler.Timeout == 0 {
		c.Crawler.Timeout = 60 * time.Second
	}
	if c.Crawler.RateLimit == 0 {
		c.Crawler.RateLimit = 0.5
	}
	if c.Export.Dir == "" {
		c.Export.Dir = "reports"
	}
	if len(c.Catalog) == 0 {
		c.Catalog = DefaultCatalog()
	}
}

// validate checks struct tags and catalog entries.
func (c *Config) validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return err
	}
	for i, p := range c.Catalog {
		if err := v.Struct(p); err != nil {
			return fmt.Errorf("catalog entry %d (%q): %w", i, p.Name, err)
		}
	}
	return nil
}
