//
// SPDX-License-Identifier: GPL-3.0-or-later
//
// Copyright (C) 2025 Aaron Mathis aaron.mathis@gmail.com
//
// This file is part of CustProc.
//
// CustProc is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// CustProc is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with CustProc. If not, see https://www.gnu.org/licenses/.

package location

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"github.com/aaronlmathis/custproc/core"
)

// ObjectAPI is the subset of the S3 client used to read and write objects.
type ObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Options configures the S3 client built on first use.
type S3Options struct {
	Region          string
	Profile         string
	EndpointURL     string // custom endpoint for S3-compatible services
	ForcePathStyle  bool
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
}

// OpenerOption allows functional customization of Opener.
type OpenerOption func(*Opener)

// WithS3Options sets the options used to build the S3 client.
func WithS3Options(opts S3Options) OpenerOption {
	return func(o *Opener) { o.s3opts = opts }
}

// WithObjectClient uses client for S3 locations instead of building one.
func WithObjectClient(client ObjectAPI) OpenerOption {
	return func(o *Opener) { o.client = client }
}

// Opener opens locations for reading and writing.
type Opener struct {
	s3opts S3Options
	client ObjectAPI
}

// NewOpener creates an Opener. The S3 client is only built when an S3
// location is first opened.
func NewOpener(options ...OpenerOption) *Opener {
	o := &Opener{}
	for _, opt := range options {
		opt(o)
	}
	return o
}

// Open returns a reader for loc. A location that does not exist is reported
// with core.ErrInputNotFound.
func (o *Opener) Open(ctx context.Context, loc Location) (io.ReadCloser, error) {
	switch loc.Kind {
	case File:
		f, err := os.Open(loc.Path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: %w", core.ErrInputNotFound, err)
			}
			return nil, err
		}
		return f, nil
	case S3:
		client, err := o.objectClient(ctx)
		if err != nil {
			return nil, err
		}
		out, err := client.GetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(loc.Bucket),
			Key:    aws.String(loc.Key),
		})
		if err != nil {
			if isNotFound(err) {
				return nil, fmt.Errorf("%w: %w", core.ErrInputNotFound, err)
			}
			return nil, fmt.Errorf("failed to get object %s: %w", loc, err)
		}
		return out.Body, nil
	default:
		return nil, fmt.Errorf("location: unsupported kind %d", loc.Kind)
	}
}

// Create returns a writer for loc. Written bytes are held in memory and the
// destination is only touched on Close, with the complete content. Closing
// without writing leaves the destination untouched.
func (o *Opener) Create(ctx context.Context, loc Location) (io.WriteCloser, error) {
	switch loc.Kind {
	case File:
		return &bufferedWriteCloser{commit: func(data []byte) error {
			return os.WriteFile(loc.Path, data, 0o644)
		}}, nil
	case S3:
		client, err := o.objectClient(ctx)
		if err != nil {
			return nil, err
		}
		return &bufferedWriteCloser{commit: func(data []byte) error {
			_, err := client.PutObject(ctx, &s3.PutObjectInput{
				Bucket:      aws.String(loc.Bucket),
				Key:         aws.String(loc.Key),
				Body:        bytes.NewReader(data),
				ContentType: aws.String("application/json"),
			})
			if err != nil {
				return fmt.Errorf("failed to put object %s: %w", loc, err)
			}
			return nil
		}}, nil
	default:
		return nil, fmt.Errorf("location: unsupported kind %d", loc.Kind)
	}
}

func (o *Opener) objectClient(ctx context.Context) (ObjectAPI, error) {
	if o.client != nil {
		return o.client, nil
	}

	cfg, err := createAWSConfig(ctx, o.s3opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	opts := o.s3opts
	o.client = s3.NewFromConfig(cfg, func(so *s3.Options) {
		if opts.EndpointURL != "" {
			so.BaseEndpoint = aws.String(opts.EndpointURL)
		}
		so.UsePathStyle = opts.ForcePathStyle
	})
	return o.client, nil
}

// createAWSConfig creates AWS configuration from options
func createAWSConfig(ctx context.Context, opts S3Options) (aws.Config, error) {
	configOpts := []func(*config.LoadOptions) error{}

	if opts.Region != "" {
		configOpts = append(configOpts, config.WithRegion(opts.Region))
	}

	if opts.Profile != "" {
		configOpts = append(configOpts, config.WithSharedConfigProfile(opts.Profile))
	}

	cfg, err := config.LoadDefaultConfig(ctx, configOpts...)
	if err != nil {
		return aws.Config{}, err
	}

	if opts.AccessKeyID != "" {
		cfg.Credentials = aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(
				opts.AccessKeyID,
				opts.SecretAccessKey,
				opts.SessionToken,
			),
		)
	}

	return cfg, nil
}

func isNotFound(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NoSuchBucket", "NotFound":
			return true
		}
	}
	return false
}

// bufferedWriteCloser collects writes and hands the full content to commit on
// Close. If Write was never called nothing is committed.
type bufferedWriteCloser struct {
	buf     bytes.Buffer
	commit  func(data []byte) error
	written bool
	closed  bool
}

func (b *bufferedWriteCloser) Write(p []byte) (int, error) {
	if b.closed {
		return 0, os.ErrClosed
	}
	b.written = true
	return b.buf.Write(p)
}

func (b *bufferedWriteCloser) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true
	if !b.written {
		return nil
	}
	return b.commit(b.buf.Bytes())
}
