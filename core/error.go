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

package core

import (
	"errors"
	"fmt"
)

// This file contains the error taxonomy shared by readers, writers and the pipeline.

// ErrInputNotFound is returned when the input location does not exist.
var ErrInputNotFound = errors.New("input not found")

// Pipeline stages reported by StageError.
const (
	StageRead  = "read"
	StageWrite = "write"
)

// StageError wraps a failure with the pipeline stage and location it occurred at.
type StageError struct {
	Stage string
	Path  string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Stage, e.Path, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
