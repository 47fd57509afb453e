// Package config provides functionality for managing configuration options
// for the application using command-line flags, a JSON file and environment
// variables.
package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
)

// Options holds the configuration values for the server.
type Options struct {
	// Port defines the server's listening address (ip:port).
	Port string `json:"address"`

	// DatabaseDSN selects the PostgreSQL fingerprint store when set.
	DatabaseDSN string `json:"database_dsn"`

	// RedisURL selects the Redis fingerprint store when set and no DSN is given.
	RedisURL string `json:"redis_url"`

	// Config is the path to the Config file.
	Config string `json:"-"`

	// LogLevel is the zap level name.
	LogLevel string `json:"log_level"`

	// TimeoutSeconds bounds the search for an unissued password.
	TimeoutSeconds int `json:"generation_timeout"`

	// Pepper keys the password fingerprints.
	Pepper string `json:"fingerprint_pepper"`

	// TLSCert and TLSKey enable HTTPS when both are set.
	TLSCert string `json:"tls_cert"`
	TLSKey  string `json:"tls_key"`
}

// GenerationTimeout returns TimeoutSeconds as a duration.
func (o *Options) GenerationTimeout() time.Duration {
	return time.Duration(o.TimeoutSeconds) * time.Second
}

// Parse parses os.Args and the environment. It exits the process on error.
func Parse() *Options {
	options, err := ParseArgs(flag.CommandLine, os.Args[1:], os.Getenv)
	if err != nil {
		log.Fatalf("error while parsing configuration: %v", err)
	}
	return options
}

// ParseArgs fills Options from flags, then the config file, then the
// environment; later sources win.
func ParseArgs(fs *flag.FlagSet, args []string, getenv func(string) string) (*Options, error) {
	options := &Options{}

	fs.StringVar(&options.Port, "a", "localhost:8080", "run on ip:port server")
	fs.StringVar(&options.DatabaseDSN, "d", "", "postgres dsn for the fingerprint store")
	fs.StringVar(&options.RedisURL, "r", "", "redis url for the fingerprint store")
	fs.StringVar(&options.Config, "config", "config.json", "path to config file")
	fs.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
	fs.StringVar(&options.LogLevel, "l", "info", "log level")
	fs.IntVar(&options.TimeoutSeconds, "t", 25, "seconds to search for an unissued password")
	fs.StringVar(&options.Pepper, "p", "", "secret mixed into password fingerprints")
	fs.StringVar(&options.TLSCert, "tls-cert", "", "path to TLS certificate")
	fs.StringVar(&options.TLSKey, "tls-key", "", "path to TLS key")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// Override flags with environment variables if set
	if configPath := getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		data, err := os.ReadFile(options.Config)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("error while reading config file: %w", err)
		default:
			if err := json.Unmarshal(data, options); err != nil {
				return nil, fmt.Errorf("error while parsing config file: %w", err)
			}
		}
	}

	for env, dst := range map[string]*string{
		"SERVER_ADDRESS":     &options.Port,
		"DATABASE_DSN":       &options.DatabaseDSN,
		"REDIS_URL":          &options.RedisURL,
		"LOG_LEVEL":          &options.LogLevel,
		"FINGERPRINT_PEPPER": &options.Pepper,
	} {
		if v := getenv(env); v != "" {
			*dst = v
		}
	}

	if v := getenv("GENERATION_TIMEOUT"); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("GENERATION_TIMEOUT: %w", err)
		}
		options.TimeoutSeconds = seconds
	}

	if options.TimeoutSeconds <= 0 {
		return nil, fmt.Errorf("generation timeout must be positive, got %d", options.TimeoutSeconds)
	}

	return options, nil
}
