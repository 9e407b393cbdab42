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

// Package config loads the optional YAML configuration file of CustProc.
//
// Every setting can also be given on the command line; flags that are set
// explicitly take precedence over the file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/aaronlmathis/custproc/filter"
	"github.com/aaronlmathis/custproc/location"
	"github.com/aaronlmathis/custproc/readers"
)

// Config is the top level configuration document.
type Config struct {
	Input  string       `yaml:"input"`
	Output string       `yaml:"output"`
	Filter FilterConfig `yaml:"filter"`
	CSV    CSVConfig    `yaml:"csv"`
	S3     S3Config     `yaml:"s3"`
}

// FilterConfig holds default filter criteria.
type FilterConfig struct {
	Country *string `yaml:"country"`
	MinAge  *int    `yaml:"min_age"`
}

// CSVConfig tunes the CSV reader. LazyQuotes is nil when unset so the
// reader default applies.
type CSVConfig struct {
	Comma      string `yaml:"comma"`
	Comment    string `yaml:"comment"`
	LazyQuotes *bool  `yaml:"lazy_quotes"`
	TrimSpace  bool   `yaml:"trim_space"`
}

// S3Config configures access to s3:// locations.
type S3Config struct {
	Region          string `yaml:"region"`
	Profile         string `yaml:"profile"`
	Endpoint        string `yaml:"endpoint"`
	PathStyle       bool   `yaml:"path_style"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	SessionToken    string `yaml:"session_token"`
}

// Load reads and parses the configuration file at path.
// Unknown keys are rejected and an empty file yields a zero Config.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse decodes a configuration document from r.
func Parse(r io.Reader) (*Config, error) {
	cfg := &Config{}

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.CSV.Comma != "" && utf8.RuneCountInString(c.CSV.Comma) != 1 {
		return fmt.Errorf("csv.comma must be a single character, got %q", c.CSV.Comma)
	}
	if c.CSV.Comment != "" && utf8.RuneCountInString(c.CSV.Comment) != 1 {
		return fmt.Errorf("csv.comment must be a single character, got %q", c.CSV.Comment)
	}
	comma := c.CSV.Comma
	if comma == "" {
		comma = ","
	}
	if c.CSV.Comment != "" && c.CSV.Comment == comma {
		return fmt.Errorf("csv.comment must differ from csv.comma")
	}
	return nil
}

// Criteria returns the configured filter criteria. An empty country is
// treated as not set.
func (c *Config) Criteria() filter.Criteria {
	var criteria filter.Criteria
	if c.Filter.Country != nil && *c.Filter.Country != "" {
		criteria = criteria.WithCountry(*c.Filter.Country)
	}
	if c.Filter.MinAge != nil {
		criteria = criteria.WithMinAge(*c.Filter.MinAge)
	}
	return criteria
}

// CSVOptions returns the reader options for the csv section.
func (c *Config) CSVOptions() []readers.ReaderOptionCSV {
	var opts []readers.ReaderOptionCSV
	if c.CSV.Comma != "" {
		r, _ := utf8.DecodeRuneInString(c.CSV.Comma)
		opts = append(opts, readers.WithCSVComma(r))
	}
	if c.CSV.Comment != "" {
		r, _ := utf8.DecodeRuneInString(c.CSV.Comment)
		opts = append(opts, readers.WithCSVComment(r))
	}
	if c.CSV.LazyQuotes != nil {
		opts = append(opts, readers.WithCSVLazyQuotes(*c.CSV.LazyQuotes))
	}
	if c.CSV.TrimSpace {
		opts = append(opts, readers.WithCSVTrimSpace(true))
	}
	return opts
}

// S3Options returns the S3 client options for the s3 section.
func (c *Config) S3Options() location.S3Options {
	return location.S3Options{
		Region:          c.S3.Region,
		Profile:         c.S3.Profile,
		EndpointURL:     c.S3.Endpoint,
		ForcePathStyle:  c.S3.PathStyle,
		AccessKeyID:     c.S3.AccessKeyID,
		SecretAccessKey: c.S3.SecretAccessKey,
		SessionToken:    c.S3.SessionToken,
	}
}
