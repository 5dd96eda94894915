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
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

type hclDestination struct {
	EndpointURL     *string `hcl:"endpoint_url,optional"`
	Bucket          *string `hcl:"bucket,optional"`
	AccessKeyID     *string `hcl:"access_key_id,optional"`
	SecretAccessKey *string `hcl:"secret_access_key,optional"`
	PublicURL       *string `hcl:"public_url,optional"`
	Region          *string `hcl:"region,optional"`
}

type hclTransfer struct {
	Timeout     *string `hcl:"timeout,optional"`
	MaxAttempts *int    `hcl:"max_attempts,optional"`
	BackoffBase *string `hcl:"backoff_base,optional"`
	Delay       *string `hcl:"delay,optional"`
}

type hclConfig struct {
	InputFile        *string           `hcl:"input_file,optional"`
	InputGlob        *string           `hcl:"input_glob,optional"`
	InputDir         *string           `hcl:"input_dir,optional"`
	OutputDir        *string           `hcl:"output_dir,optional"`
	DownloadDir      *string           `hcl:"download_dir,optional"`
	MappingFile      *string           `hcl:"mapping_file,optional"`
	SourcePattern    *string           `hcl:"source_pattern,optional"`
	KeyEscapes       map[string]string `hcl:"key_escapes,optional"`
	StagingSeparator *string           `hcl:"staging_separator,optional"`
	Destination      *hclDestination   `hcl:"destination,block"`
	Transfer         *hclTransfer      `hcl:"transfer,block"`
}

// 📝 Parse decodes HCL on top of cfg. Only attributes present in the file are applied.
func (p *HCLParser) Parse(ctx context.Context, data []byte, cfg *Config) error {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "urlmigrate.hcl")
	if diags.HasErrors() {
		return errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	var raw hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &raw)
	if diags.HasErrors() {
		return errors.Errorf("decoding HCL: %s", diags.Error())
	}

	setString(&cfg.InputFile, raw.InputFile)
	setString(&cfg.InputGlob, raw.InputGlob)
	setString(&cfg.InputDir, raw.InputDir)
	setString(&cfg.OutputDir, raw.OutputDir)
	setString(&cfg.DownloadDir, raw.DownloadDir)
	setString(&cfg.MappingFile, raw.MappingFile)
	setString(&cfg.SourcePattern, raw.SourcePattern)
	setString(&cfg.StagingSeparator, raw.StagingSeparator)
	if raw.KeyEscapes != nil {
		cfg.KeyEscapes = raw.KeyEscapes
	}

	if d := raw.Destination; d != nil {
		setString(&cfg.Destination.EndpointURL, d.EndpointURL)
		setString(&cfg.Destination.Bucket, d.Bucket)
		setString(&cfg.Destination.AccessKeyID, d.AccessKeyID)
		setString(&cfg.Destination.SecretAccessKey, d.SecretAccessKey)
		setString(&cfg.Destination.PublicURL, d.PublicURL)
		setString(&cfg.Destination.Region, d.Region)
	}

	if t := raw.Transfer; t != nil {
		if t.MaxAttempts != nil {
			cfg.Transfer.MaxAttempts = *t.MaxAttempts
		}
		for _, pair := range []struct {
			raw *string
			dst *Duration
		}{
			{t.Timeout, &cfg.Transfer.Timeout},
			{t.BackoffBase, &cfg.Transfer.BackoffBase},
			{t.Delay, &cfg.Transfer.Delay},
		} {
			if pair.raw == nil {
				continue
			}
			if err := pair.dst.UnmarshalText([]byte(*pair.raw)); err != nil {
				return errors.Errorf("decoding HCL transfer block: %w", err)
			}
		}
	}

	return nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
