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
	"fmt"
	"strings"
)

// Package location resolves the input and output paths of a run to readers and
// writers. A path is either a local file or an S3 object written as
// s3://bucket/key.

const s3Scheme = "s3://"

// Kind identifies where a Location points.
type Kind int

const (
	// File is a path on the local filesystem.
	File Kind = iota
	// S3 is an object in an S3 bucket.
	S3
)

// Location is a parsed input or output path.
type Location struct {
	Kind   Kind
	Path   string // local path, File only
	Bucket string // S3 only
	Key    string // S3 only
	raw    string
}

// Parse interprets uri as an S3 object when it starts with s3://, and as a
// local path otherwise.
func Parse(uri string) (Location, error) {
	if uri == "" {
		return Location{}, fmt.Errorf("location: empty path")
	}

	if !strings.HasPrefix(uri, s3Scheme) {
		return Location{Kind: File, Path: uri, raw: uri}, nil
	}

	bucket, key, _ := strings.Cut(strings.TrimPrefix(uri, s3Scheme), "/")
	if bucket == "" || key == "" {
		return Location{}, fmt.Errorf("location: %q must have the form s3://bucket/key", uri)
	}
	return Location{Kind: S3, Bucket: bucket, Key: key, raw: uri}, nil
}

// String returns the path as it was given.
func (l Location) String() string {
	return l.raw
}
