// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dawg

import (
	"errors"
	"fmt"

	"github.com/fsabuild/dawg/internal/arena"
)

// Sentinel errors for use with errors.Is against a recovered panic value.
var (
	errOrderViolation = errors.New("dawg: sequence out of order")
	errAfterComplete  = errors.New("dawg: add called after complete")
)

// AllocationFailureError is raised (via panic) when the arena cannot grow
// to satisfy an allocation within its configured address-space ceiling
// (see [WithMaxArenaSize]). It is defined in
// [github.com/fsabuild/dawg/internal/arena] and aliased here so callers
// never need to import an internal package to recognize it.
type AllocationFailureError = arena.AllocationFailureError

// OrderViolationError is raised (via panic) by [Builder.Add] when a
// sequence compares less than the previously added one. A repeat of the
// immediately preceding sequence (including a repeated initial empty
// sequence) is a no-op rather than a violation; an empty sequence after
// any non-empty one is a violation.
type OrderViolationError struct {
	Previous []byte
	Got      []byte
}

func (e *OrderViolationError) Error() string {
	return fmt.Sprintf("dawg: sequence %q is out of order after %q", e.Got, e.Previous)
}

func (e *OrderViolationError) Unwrap() error { return errOrderViolation }

// AfterCompleteError is raised (via panic) by [Builder.Add] or
// [Builder.Complete] when called on a builder that has already been
// completed.
type AfterCompleteError struct{}

func (e *AfterCompleteError) Error() string {
	return "dawg: builder used after Complete"
}

func (e *AfterCompleteError) Unwrap() error { return errAfterComplete }
