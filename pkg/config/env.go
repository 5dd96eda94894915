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
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// Environment variables recognized on top of the config file.
const (
	EnvInputFile       = "INPUT_FILE"
	EnvInputGlob       = "INPUT_GLOB"
	EnvEndpointURL     = "R2_ENDPOINT_URL"
	EnvBucketName      = "R2_BUCKET_NAME"
	EnvAccessKeyID     = "R2_ACCESS_KEY_ID"
	EnvSecretAccessKey = "R2_SECRET_ACCESS_KEY"
	EnvPublicURL       = "R2_PUBLIC_URL"
)

// LoadDotEnv loads each existing file into the process environment.
// Variables already set in the environment win. Absent files are skipped.
func LoadDotEnv(ctx context.Context, files ...string) error {
	logger := zerolog.Ctx(ctx)
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			logger.Debug().Str("path", f).Msg("no env file")
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return errors.Errorf("loading env file %s: %w", f, err)
		}
		logger.Debug().Str("path", f).Msg("loaded env file")
	}
	return nil
}

// ApplyEnv overlays every recognized variable that lookup reports as set.
func (cfg *Config) ApplyEnv(lookup func(string) (string, bool)) {
	for name, dst := range map[string]*string{
		EnvInputFile:       &cfg.InputFile,
		EnvInputGlob:       &cfg.InputGlob,
		EnvEndpointURL:     &cfg.Destination.EndpointURL,
		EnvBucketName:      &cfg.Destination.Bucket,
		EnvAccessKeyID:     &cfg.Destination.AccessKeyID,
		EnvSecretAccessKey: &cfg.Destination.SecretAccessKey,
		EnvPublicURL:       &cfg.Destination.PublicURL,
	} {
		if v, ok := lookup(name); ok && v != "" {
			*dst = v
		}
	}
}
