package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// EnvPrefix starts every environment variable ApplyEnv reads.
const EnvPrefix = "SHADERGRAPH_"

type envSetter func(c *Config, value string) error

func setString(field func(*Config) *string) envSetter {
	return func(c *Config, value string) error {
		*field(c) = value
		return nil
	}
}

var envSetters = map[string]envSetter{
	"EXPORT_PATH":   setString(func(c *Config) *string { return &c.ExportPath }),
	"LINE_ENDING":   setString(func(c *Config) *string { return &c.LineEnding }),
	"ENTRY_POINT":   setString(func(c *Config) *string { return &c.EntryPoint }),
	"LOG_LEVEL":     setString(func(c *Config) *string { return &c.LogLevel }),
	"LOG_FORMAT":    setString(func(c *Config) *string { return &c.LogFormat }),
	"PREVIEW_URL":   setString(func(c *Config) *string { return &c.Preview.URL }),
	"PREVIEW_EVENT": setString(func(c *Config) *string { return &c.Preview.Event }),
	"INCLUDES": func(c *Config, value string) error {
		c.Includes = nil
		for _, inc := range strings.Split(value, ",") {
			if inc = strings.TrimSpace(inc); inc != "" {
				c.Includes = append(c.Includes, inc)
			}
		}
		return nil
	},
	"ANNOTATE": func(c *Config, value string) error {
		b, err := strconv.ParseBool(value)
		c.Annotate = b
		return err
	},
	"HEALTHCHECK_PORT": func(c *Config, value string) error {
		p, err := strconv.Atoi(value)
		c.HealthcheckPort = p
		return err
	},
	"WATCH_DEBOUNCE": func(c *Config, value string) error {
		d, err := time.ParseDuration(value)
		c.Watch.Debounce = d
		return err
	},
}

// ApplyEnv overlays SHADERGRAPH_* entries of environ (os.Environ format)
// onto cfg. Unknown names under the prefix are rejected.
func ApplyEnv(cfg *Config, environ []string) error {
	for _, e := range environ {
		pair := strings.SplitN(e, "=", 2)
		if len(pair) != 2 || !strings.HasPrefix(pair[0], EnvPrefix) {
			continue
		}
		key := strings.TrimPrefix(pair[0], EnvPrefix)
		set, ok := envSetters[key]
		if !ok {
			return fmt.Errorf("unknown environment variable %s", pair[0])
		}
		if err := set(cfg, pair[1]); err != nil {
			return fmt.Errorf("invalid value for %s: %w", pair[0], err)
		}
	}
	return nil
}
