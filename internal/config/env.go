package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables that override the config file.
const (
	EnvLanguage = "SAKEENA_LANGUAGE"
	EnvCity     = "SAKEENA_CITY"
	EnvCountry  = "SAKEENA_COUNTRY"
	EnvMethod   = "SAKEENA_METHOD"
)

var envKeys = map[string]string{
	EnvLanguage: "language",
	EnvCity:     "city",
	EnvCountry:  "country",
	EnvMethod:   "method",
}

// LoadDotEnv loads variables from the given .env files into the process
// environment without overriding variables that are already set. Missing
// files are ignored.
func LoadDotEnv(files ...string) error {
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overlays SAKEENA_* environment variables onto c.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	for _, env := range []string{EnvLanguage, EnvCity, EnvCountry, EnvMethod} {
		v, ok := lookup(env)
		if !ok || v == "" {
			continue
		}
		if err := c.Set(envKeys[env], v); err != nil {
			return fmt.Errorf("%s: %w", env, err)
		}
	}
	return nil
}
