// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gogpu/naga/hlsl"
	"gopkg.in/yaml.v3"
)

// Line ending names accepted by LineEnding.
const (
	LineEndingCRLF = "crlf"
	LineEndingLF   = "lf"
)

// Config holds every setting of the application.
type Config struct {
	ExportPath string `yaml:"export_path" validate:"required"`
	LineEnding string `yaml:"line_ending" validate:"oneof=crlf lf"`
	EntryPoint string `yaml:"entry_point" validate:"required,hlsl_ident"`
	// Includes are emitted as #include lines at the top of generated source.
	Includes []string `yaml:"includes" validate:"dive,required"`
	// Annotate writes a comment with the node tag before each node's code.
	Annotate bool `yaml:"annotate"`

	LogLevel  string `yaml:"log_level" validate:"oneof=debug info warn error"`
	LogFormat string `yaml:"log_format" validate:"oneof=text json"`

	// HealthcheckPort serves /health and /metrics in watch mode. 0 disables.
	HealthcheckPort int `yaml:"healthcheck_port" validate:"gte=0,lte=65535"`

	Watch   WatchConfig   `yaml:"watch"`
	Preview PreviewConfig `yaml:"preview"`
}

// WatchConfig tunes the regenerate-on-save loop.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce" validate:"gte=0"`
}

// PreviewConfig points at an optional socket.io preview host.
type PreviewConfig struct {
	URL   string `yaml:"url" validate:"omitempty,url"`
	Event string `yaml:"event" validate:"required"`
}

// Default returns the settings used when nothing overrides them.
func Default() *Config {
	return &Config{
		ExportPath: "shader.hlsl",
		LineEnding: LineEndingCRLF,
		EntryPoint: "main",
		Includes:   []string{"ShaderEditorDefine.hlsli", "ShaderEditorPreset.hlsli"},
		LogLevel:   "info",
		LogFormat:  "text",
		Watch: WatchConfig{
			Debounce: 200 * time.Millisecond,
		},
		Preview: PreviewConfig{
			Event: "shader_source",
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := Decode(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// Decode overlays YAML data onto cfg. Unknown keys are rejected.
func Decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// NewlineSequence returns the characters LineEnding names.
func (c *Config) NewlineSequence() string {
	if c.LineEnding == LineEndingLF {
		return "\n"
	}
	return "\r\n"
}

var (
	validate  = newValidator()
	identRule = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("hlsl_ident", validateIdent); err != nil {
		panic(err)
	}
	return v
}

// validateIdent accepts names usable as an HLSL function name.
func validateIdent(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	return identRule.MatchString(name) && !hlsl.IsReserved(name)
}

// Validate checks cfg against its field rules.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
