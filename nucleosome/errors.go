// Copyright 2020 Grail Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package nucleosome

import (
	"fmt"
)

// InputFormatError is returned when track or fragment data is malformed.
type InputFormatError struct {
	// Path is the offending file, if known.
	Path string
	// Line is the 1-based line number, or 0 if not applicable.
	Line int
	Err  error
}

func (e *InputFormatError) Error() string {
	switch {
	case e.Path != "" && e.Line > 0:
		return fmt.Sprintf("nucleosome: malformed input %s:%d: %v", e.Path, e.Line, e.Err)
	case e.Path != "":
		return fmt.Sprintf("nucleosome: malformed input %s: %v", e.Path, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("nucleosome: malformed input on line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("nucleosome: malformed input: %v", e.Err)
}

// Cause returns the underlying error, for github.com/pkg/errors.Cause.
func (e *InputFormatError) Cause() error { return e.Err }

// RegionTooSmallError is returned when a region is shorter than the
// smoothing window or the minimum nucleosome length.
type RegionTooSmallError struct {
	Len    int
	Min    int
	Reason string
}

func (e *RegionTooSmallError) Error() string {
	return fmt.Sprintf("nucleosome: region of %d position(s) is smaller than %s (%d)", e.Len, e.Reason, e.Min)
}

// EmptyInputError is returned when there are no fragments or positions to
// work with.
type EmptyInputError struct {
	What string
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("nucleosome: no %s supplied", e.What)
}
