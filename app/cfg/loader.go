package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Database configuration
	DBHost     string `long:"db-host" env:"DB_HOST" default:"localhost" description:"Database host"`
	DBPort     string `long:"db-port" env:"DB_PORT" default:"5432" description:"Database port"`
	DBUser     string `long:"db-user" env:"DB_USER" default:"techpulse" description:"Database user"`
	DBPassword string `long:"db-password" env:"DB_PASSWORD" default:"techpulse" description:"Database password (required)" required:"true"`
	DBName     string `long:"db-name" env:"DB_NAME" default:"techpulse" description:"Database name"`

	// Application configuration
	SourcesFile    string `long:"sources-file" env:"SOURCES_FILE" default:"./sources.yml" description:"YAML file listing registered feed sources"`
	Port           string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	APIAccessKey   string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for trigger endpoints (optional)"`
	FetchPerSource int    `long:"fetch-per-source" env:"FETCH_PER_SOURCE" default:"3" description:"Maximum entries taken from each source per run"`
	StaleAfter     int    `long:"stale-after" env:"STALE_AFTER" default:"2" description:"Hours after which a refresh trigger schedules a new ingestion"`

	// Classification service
	HFToken    string `long:"hf-token" env:"HF_TOKEN" description:"HuggingFace API token; when empty the classifier always uses keyword fallback"`
	HFEndpoint string `long:"hf-endpoint" env:"HF_ENDPOINT" default:"https://api-inference.huggingface.co/models/facebook/bart-large-mnli" description:"Zero-shot classification endpoint"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"TechPulse/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		DBHost:         raw.DBHost,
		DBPort:         raw.DBPort,
		DBUser:         raw.DBUser,
		DBPassword:     raw.DBPassword,
		DBName:         raw.DBName,
		SourcesFile:    raw.SourcesFile,
		Port:           raw.Port,
		APIAccessKey:   raw.APIAccessKey,
		FetchPerSource: raw.FetchPerSource,
		StaleAfter:     raw.StaleAfter,
		HFToken:        raw.HFToken,
		HFEndpoint:     raw.HFEndpoint,
		UserAgent:      raw.UserAgent,
		Timezone:       raw.Timezone,
		Debug:          raw.Debug,
		Version:        GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
