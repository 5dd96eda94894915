// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// ErrMissingSetting is wrapped by every error caused by an absent required setting.
var ErrMissingSetting = errors.Base("missing required setting")

const (
	DefaultInputDir         = "input"
	DefaultOutputDir        = "output"
	DefaultDownloadDir      = "downloads"
	DefaultMappingFile      = "urls-map.csv"
	DefaultSourcePattern    = `https://firebasestorage\.googleapis\.com[^\s"')]*token=[^\s"')]*`
	DefaultStagingSeparator = "_"
	DefaultRegion           = "auto"
	DefaultTimeout          = 30 * time.Second
	DefaultMaxAttempts      = 5
	DefaultBackoffBase      = time.Second
	DefaultDelay            = time.Second
)

// DefaultKeyEscapes maps the source store's encoded separator to the literal one.
func DefaultKeyEscapes() map[string]string {
	return map[string]string{"%2F": "/"}
}

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse decodes data on top of cfg
	Parse(ctx context.Context, data []byte, cfg *Config) error

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// Duration is a time.Duration that reads from strings like "30s" in config files.
type Duration time.Duration

func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) String() string { return time.Duration(d).String() }

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return errors.Errorf("parsing duration %q: %w", string(text), err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	return d.UnmarshalText([]byte(node.Value))
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.Errorf("duration must be a string: %w", err)
	}
	return d.UnmarshalText([]byte(s))
}

// 📦 Destination addresses the S3-compatible store objects are migrated to
type Destination struct {
	EndpointURL     string `json:"endpoint_url,omitempty" yaml:"endpoint_url,omitempty"`
	Bucket          string `json:"bucket,omitempty" yaml:"bucket,omitempty"`
	AccessKeyID     string `json:"access_key_id,omitempty" yaml:"access_key_id,omitempty"`
	SecretAccessKey string `json:"secret_access_key,omitempty" yaml:"secret_access_key,omitempty"`
	PublicURL       string `json:"public_url,omitempty" yaml:"public_url,omitempty"`
	Region          string `json:"region,omitempty" yaml:"region,omitempty"`
}

// 🔁 Transfer tunes the download loop
type Transfer struct {
	Timeout     Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	MaxAttempts int      `json:"max_attempts,omitempty" yaml:"max_attempts,omitempty"`
	BackoffBase Duration `json:"backoff_base,omitempty" yaml:"backoff_base,omitempty"`
	Delay       Duration `json:"delay,omitempty" yaml:"delay,omitempty"`
}

// 📚 Config is built once at process start and handed to every stage
type Config struct {
	InputFile        string            `json:"input_file,omitempty" yaml:"input_file,omitempty"`
	InputGlob        string            `json:"input_glob,omitempty" yaml:"input_glob,omitempty"`
	InputDir         string            `json:"input_dir,omitempty" yaml:"input_dir,omitempty"`
	OutputDir        string            `json:"output_dir,omitempty" yaml:"output_dir,omitempty"`
	DownloadDir      string            `json:"download_dir,omitempty" yaml:"download_dir,omitempty"`
	MappingFile      string            `json:"mapping_file,omitempty" yaml:"mapping_file,omitempty"`
	SourcePattern    string            `json:"source_pattern,omitempty" yaml:"source_pattern,omitempty"`
	KeyEscapes       map[string]string `json:"key_escapes,omitempty" yaml:"key_escapes,omitempty"`
	StagingSeparator string            `json:"staging_separator,omitempty" yaml:"staging_separator,omitempty"`
	Destination      Destination       `json:"destination,omitempty" yaml:"destination,omitempty"`
	Transfer         Transfer          `json:"transfer,omitempty" yaml:"transfer,omitempty"`
}

// 🏭 Default returns a config populated with every default value
func Default() *Config {
	return &Config{
		InputDir:         DefaultInputDir,
		OutputDir:        DefaultOutputDir,
		DownloadDir:      DefaultDownloadDir,
		MappingFile:      DefaultMappingFile,
		SourcePattern:    DefaultSourcePattern,
		StagingSeparator: DefaultStagingSeparator,
		Destination: Destination{
			Region: DefaultRegion,
		},
		Transfer: Transfer{
			Timeout:     Duration(DefaultTimeout),
			MaxAttempts: DefaultMaxAttempts,
			BackoffBase: Duration(DefaultBackoffBase),
			Delay:       Duration(DefaultDelay),
		},
	}
}

// 🎯 Load reads the config file at path over the defaults.
// An empty path yields the defaults.
func Load(ctx context.Context, path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	// .urlmigrate files may hold either YAML or HCL
	if filepath.Base(path) == ".urlmigrate" || filepath.Ext(path) == ".urlmigrate" {
		if err := (&YAMLParser{}).Parse(ctx, data, cfg); err == nil {
			return cfg, nil
		}
		cfg = Default()
		if err := (&HCLParser{}).Parse(ctx, data, cfg); err != nil {
			return nil, errors.Errorf("parsing %s as YAML or HCL: %w", path, err)
		}
		return cfg, nil
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	if err := p.Parse(ctx, data, cfg); err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Normalize fills settings a config file or the environment may have blanked.
func (cfg *Config) Normalize() {
	if len(cfg.KeyEscapes) == 0 {
		cfg.KeyEscapes = DefaultKeyEscapes()
	}
	if cfg.Destination.Region == "" {
		cfg.Destination.Region = DefaultRegion
	}
	if cfg.StagingSeparator == "" {
		cfg.StagingSeparator = DefaultStagingSeparator
	}
	if cfg.MappingFile == "" {
		cfg.MappingFile = DefaultMappingFile
	}
	if cfg.SourcePattern == "" {
		cfg.SourcePattern = DefaultSourcePattern
	}
	cfg.Destination.PublicURL = strings.TrimRight(cfg.Destination.PublicURL, "/")
	cfg.InputDir = filepath.Clean(cfg.InputDir)
	cfg.OutputDir = filepath.Clean(cfg.OutputDir)
	cfg.DownloadDir = filepath.Clean(cfg.DownloadDir)
}

// Requirement names a group of settings a stage cannot run without.
type Requirement int

const (
	// RequireDocument needs INPUT_FILE or INPUT_GLOB
	RequireDocument Requirement = iota
	// RequireDestination needs every destination store setting
	RequireDestination
)

func missing(name string) error {
	return errors.Errorf("%w: %s", ErrMissingSetting, name)
}

// 🔍 Validate checks the settings every stage depends on plus the given requirements.
// All problems are reported together.
func (cfg *Config) Validate(reqs ...Requirement) error {
	var result *multierror.Error

	if _, err := regexp.Compile(cfg.SourcePattern); err != nil {
		result = multierror.Append(result, errors.Errorf("source_pattern does not compile: %w", err))
	}
	if cfg.Transfer.MaxAttempts < 1 {
		result = multierror.Append(result, errors.Errorf("transfer.max_attempts must be at least 1, got %d", cfg.Transfer.MaxAttempts))
	}
	if cfg.Transfer.Timeout < 0 || cfg.Transfer.BackoffBase < 0 || cfg.Transfer.Delay < 0 {
		result = multierror.Append(result, errors.New("transfer durations must not be negative"))
	}
	if cfg.StagingSeparator == "/" || strings.ContainsRune(cfg.StagingSeparator, filepath.Separator) {
		result = multierror.Append(result, errors.Errorf("staging_separator %q is a path separator", cfg.StagingSeparator))
	}
	for from := range cfg.KeyEscapes {
		if from == "" {
			result = multierror.Append(result, errors.New("key_escapes has an empty escape sequence"))
		}
	}

	for _, req := range reqs {
		switch req {
		case RequireDocument:
			if cfg.InputFile == "" && cfg.InputGlob == "" {
				result = multierror.Append(result, missing(EnvInputFile))
			}
		case RequireDestination:
			for name, value := range map[string]string{
				EnvEndpointURL:     cfg.Destination.EndpointURL,
				EnvBucketName:      cfg.Destination.Bucket,
				EnvAccessKeyID:     cfg.Destination.AccessKeyID,
				EnvSecretAccessKey: cfg.Destination.SecretAccessKey,
				EnvPublicURL:       cfg.Destination.PublicURL,
			} {
				if value == "" {
					result = multierror.Append(result, missing(name))
				}
			}
		}
	}

	if result == nil {
		return nil
	}
	sort.Slice(result.Errors, func(i, j int) bool {
		return result.Errors[i].Error() < result.Errors[j].Error()
	})
	return result.ErrorOrNil()
}

// EnsureDirs creates the input, output and download directories.
func (cfg *Config) EnsureDirs() error {
	for _, dir := range []string{cfg.InputDir, cfg.OutputDir, cfg.DownloadDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Errorf("creating directory %s: %w", dir, err)
		}
	}
	return nil
}

// 📄 Documents returns the source documents selected by INPUT_GLOB or INPUT_FILE, in path order.
func (cfg *Config) Documents() ([]string, error) {
	if cfg.InputGlob == "" {
		if cfg.InputFile == "" {
			return nil, missing(EnvInputFile)
		}
		return []string{filepath.Join(cfg.InputDir, cfg.InputFile)}, nil
	}

	matches, err := doublestar.Glob(os.DirFS(cfg.InputDir), cfg.InputGlob, doublestar.WithFilesOnly())
	if err != nil {
		return nil, errors.Errorf("matching %s in %s: %w", cfg.InputGlob, cfg.InputDir, err)
	}
	sort.Strings(matches)

	docs := make([]string, 0, len(matches))
	for _, m := range matches {
		docs = append(docs, filepath.Join(cfg.InputDir, filepath.FromSlash(m)))
	}
	return docs, nil
}

// URLListPath is where the extracted URL list lives, named after the input file.
func (cfg *Config) URLListPath() string {
	stem := "urls"
	if cfg.InputFile != "" {
		stem = strings.TrimSuffix(filepath.Base(cfg.InputFile), filepath.Ext(cfg.InputFile))
	}
	return filepath.Join(cfg.OutputDir, stem+".csv")
}

// MappingPath is the mapping file inside the output directory.
func (cfg *Config) MappingPath() string {
	return filepath.Join(cfg.OutputDir, cfg.MappingFile)
}

// UpdatedPath returns where the rewritten copy of doc is written: "<stem>-updated<ext>".
func (cfg *Config) UpdatedPath(doc string) string {
	base := filepath.Base(doc)
	ext := filepath.Ext(base)
	return filepath.Join(cfg.OutputDir, strings.TrimSuffix(base, ext)+"-updated"+ext)
}
