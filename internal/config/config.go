package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/alkime/slideswitch/pkg/slideswitch"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	// EnvProduction represents the production environment.
	EnvProduction = "production"

	// envPrefix namespaces every variable, e.g. SLIDESWITCH_SHAPE.
	envPrefix = "SLIDESWITCH"
)

// Config holds all application configuration.
type Config struct {
	// Switch settings
	ThemeColor string        `envconfig:"THEME_COLOR" default:"#00ee00"`
	Open       bool          `envconfig:"OPEN" default:"false"`
	Shape      string        `envconfig:"SHAPE" default:"rect"`
	Slideable  bool          `envconfig:"SLIDEABLE" default:"true"`
	TickPeriod time.Duration `envconfig:"TICK_PERIOD" default:"3ms"`
	StateFile  string        `envconfig:"STATE_FILE"`

	// Server settings
	Env       string `envconfig:"ENV" default:"development"`
	Port      string `envconfig:"PORT" default:"8080"`
	PublicDir string `envconfig:"PUBLIC_DIR" default:"./public"`

	// Security settings
	HSTSMaxAge int    `envconfig:"HSTS_MAX_AGE" default:"31536000"`
	CSPMode    string `envconfig:"CSP_MODE" default:"relaxed"`

	// Logging settings
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// LoadConfig loads configuration from .env file and environment variables.
func LoadConfig() (*Config, error) {
	// Try to load .env file (optional for development)
	if err := godotenv.Load(); err != nil {
		// Not an error if file doesn't exist
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	}

	var config Config
	if err := envconfig.Process(envPrefix, &config); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks the values envconfig cannot.
func (c *Config) Validate() error {
	if _, err := slideswitch.ParseShape(c.Shape); err != nil {
		return fmt.Errorf("invalid SHAPE: %w", err)
	}

	if _, err := colorful.Hex(c.ThemeColor); err != nil {
		return fmt.Errorf("invalid THEME_COLOR %q: %w", c.ThemeColor, err)
	}

	if c.TickPeriod <= 0 {
		return fmt.Errorf("invalid TICK_PERIOD %s: must be positive", c.TickPeriod)
	}

	return nil
}

// SwitchConfig converts the settings into the switch's initial configuration.
func (c *Config) SwitchConfig() (slideswitch.Config, error) {
	shape, err := slideswitch.ParseShape(c.Shape)
	if err != nil {
		return slideswitch.Config{}, fmt.Errorf("invalid shape: %w", err)
	}

	theme, err := colorful.Hex(c.ThemeColor)
	if err != nil {
		return slideswitch.Config{}, fmt.Errorf("invalid theme color %q: %w", c.ThemeColor, err)
	}

	return slideswitch.Config{
		Theme:     theme,
		Open:      c.Open,
		Shape:     shape,
		Slideable: c.Slideable,
	}, nil
}

// BuildCSP constructs Content Security Policy based on mode.
func BuildCSP(mode string) string {
	if mode == "strict" {
		return "default-src 'self'; " +
			"style-src 'self' 'unsafe-inline'; " +
			"script-src 'self'; " +
			"img-src 'self' data:; " +
			"object-src 'none'; " +
			"base-uri 'self'; " +
			"form-action 'self'"
	}

	return "default-src 'self'; " +
		"style-src 'self' 'unsafe-inline'; " +
		"script-src 'self' 'unsafe-inline'; " +
		"img-src 'self' data:"
}
