/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package credstore

import (
	"errors"
	"fmt"

	"github.com/tomoncle/credstore/database"
	"github.com/tomoncle/credstore/types"
)

var (
	// ErrNotFound is returned when a filter matches no record.
	ErrNotFound = errors.New("no record matches the filter")
	// ErrAmbiguousMatch is returned when a filter matches more than one
	// record where exactly one was required.
	ErrAmbiguousMatch = errors.New("more than one record matches the filter")
	// ErrInvalidAttribute is matched by every *InvalidAttributeError.
	ErrInvalidAttribute = types.ErrInvalidAttribute
	// ErrStoreFailure is matched by every *StoreError.
	ErrStoreFailure = errors.New("store failure")
)

// InvalidAttributeError names the rejected field and why it was rejected.
type InvalidAttributeError = types.InvalidAttributeError

// StoreError wraps an error raised by the underlying store. Kind is the
// driver-independent classification of Err.
type StoreError struct {
	Op   string
	Kind database.SQLError
	Err  error
}

func newStoreError(op string, err error) *StoreError {
	_, kind := database.IsSqlError(err)
	return &StoreError{Op: op, Kind: kind, Err: err}
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %s (%s): %v", ErrStoreFailure, e.Op, e.Kind, e.Err)
}

func (e *StoreError) Is(target error) bool {
	return target == ErrStoreFailure
}

func (e *StoreError) Unwrap() error { return e.Err }
