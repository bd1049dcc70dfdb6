package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	InterpretationAlways      = "always"
	InterpretationWhenPresent = "when-present"
)

type Config struct {
	Port                 string        `mapstructure:"PORT"`
	Env                  string        `mapstructure:"ENV"`
	LogLevel             string        `mapstructure:"LOG_LEVEL"`
	DatabaseURL          string        `mapstructure:"DATABASE_URL"`
	DBMaxConns           int32         `mapstructure:"DB_MAX_CONNS"`
	DBMinConns           int32         `mapstructure:"DB_MIN_CONNS"`
	LOINCPanelsPath      string        `mapstructure:"LOINC_PANELS_PATH"`
	LocalGroupsPath      string        `mapstructure:"LOCAL_GROUPS_PATH"`
	LocalGroupSystem     string        `mapstructure:"LOCAL_GROUP_SYSTEM"`
	InterpretationPolicy string        `mapstructure:"INTERPRETATION_POLICY"`
	AuthSigningKey       string        `mapstructure:"AUTH_SIGNING_KEY"`
	AuthIssuer           string        `mapstructure:"AUTH_ISSUER"`
	AuthAudience         string        `mapstructure:"AUTH_AUDIENCE"`
	CORSOrigins          []string      `mapstructure:"CORS_ORIGINS"`
	RequestTimeout       time.Duration `mapstructure:"REQUEST_TIMEOUT"`
}

var keys = []string{
	"PORT", "ENV", "LOG_LEVEL",
	"DATABASE_URL", "DB_MAX_CONNS", "DB_MIN_CONNS",
	"LOINC_PANELS_PATH", "LOCAL_GROUPS_PATH", "LOCAL_GROUP_SYSTEM", "INTERPRETATION_POLICY",
	"AUTH_SIGNING_KEY", "AUTH_ISSUER", "AUTH_AUDIENCE",
	"CORS_ORIGINS", "REQUEST_TIMEOUT",
}

// Load reads configuration from the environment and an optional .env file.
// It does not validate; callers pick Validate or ValidateServe.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MIN_CONNS", 2)
	v.SetDefault("LOINC_PANELS_PATH", "data/LOINC/PanelsAndForms.csv.gz")
	v.SetDefault("LOCAL_GROUPS_PATH", "data/NC_CODES/labs.csv")
	v.SetDefault("LOCAL_GROUP_SYSTEM", "urn:fhir-demo:lab-group")
	v.SetDefault("INTERPRETATION_POLICY", InterpretationAlways)
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("REQUEST_TIMEOUT", "30s")

	// Bind env vars explicitly so Unmarshal picks them up
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	// Missing .env is fine.
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if len(cfg.CORSOrigins) == 1 && strings.Contains(cfg.CORSOrigins[0], ",") {
		cfg.CORSOrigins = strings.Split(cfg.CORSOrigins[0], ",")
	}
	for i, o := range cfg.CORSOrigins {
		cfg.CORSOrigins[i] = strings.TrimSpace(o)
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// Validate checks settings shared by every command.
func (c *Config) Validate() error {
	switch c.InterpretationPolicy {
	case InterpretationAlways, InterpretationWhenPresent:
	default:
		return fmt.Errorf("INTERPRETATION_POLICY must be %q or %q, got %q",
			InterpretationAlways, InterpretationWhenPresent, c.InterpretationPolicy)
	}
	if c.LOINCPanelsPath == "" || c.LocalGroupsPath == "" {
		return fmt.Errorf("LOINC_PANELS_PATH and LOCAL_GROUPS_PATH are required")
	}
	if c.LocalGroupSystem == "" {
		return fmt.Errorf("LOCAL_GROUP_SYSTEM is required")
	}
	return nil
}

// ValidateServe adds the checks needed before serving HTTP traffic.
func (c *Config) ValidateServe() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if !c.IsDev() && c.AuthSigningKey == "" {
		return fmt.Errorf("AUTH_SIGNING_KEY must be set when ENV=%q; refusing to serve without authentication", c.Env)
	}
	if c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS (%d) exceeds DB_MAX_CONNS (%d)", c.DBMinConns, c.DBMaxConns)
	}
	return nil
}
