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

// Package store uploads staged objects to the S3-compatible destination store.
package store

import (
	"context"
	"mime"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/urlmigrate/pkg/config"
)

// Uploader puts a local file into the destination store
type Uploader interface {
	Upload(ctx context.Context, localPath string, key string) error
}

// 📦 S3Uploader uploads through the S3 API. R2 and other compatible stores work through the endpoint override.
type S3Uploader struct {
	bucket   string
	uploader *manager.Uploader
}

var _ Uploader = (*S3Uploader)(nil)

// New builds an uploader for dest. Credentials come only from dest; the shared AWS
// config is consulted for nothing but transport defaults.
func New(ctx context.Context, dest config.Destination) (*S3Uploader, error) {
	region := dest.Region
	if region == "" {
		region = config.DefaultRegion
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(dest.AccessKeyID, dest.SecretAccessKey, "")),
	)
	if err != nil {
		return nil, errors.Errorf("loading aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if dest.EndpointURL != "" {
			o.BaseEndpoint = aws.String(dest.EndpointURL)
		}
		o.UsePathStyle = true
	})

	return &S3Uploader{
		bucket:   dest.Bucket,
		uploader: manager.NewUploader(client),
	}, nil
}

// Upload implements Uploader
func (u *S3Uploader) Upload(ctx context.Context, localPath string, key string) error {
	fh, err := os.Open(localPath)
	if err != nil {
		return errors.Errorf("opening staged file: %w", err)
	}
	defer fh.Close()

	input := &s3.PutObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
		Body:   fh,
	}
	if ct := mime.TypeByExtension(filepath.Ext(key)); ct != "" {
		input.ContentType = aws.String(ct)
	}

	out, err := u.uploader.Upload(ctx, input)
	if err != nil {
		return errors.Errorf("uploading %s to bucket %s: %w", key, u.bucket, err)
	}

	zerolog.Ctx(ctx).Debug().Str("bucket", u.bucket).Str("key", key).Str("location", out.Location).Msg("uploaded")
	return nil
}
