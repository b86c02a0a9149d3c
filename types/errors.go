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

package types

import (
	"errors"
	"fmt"
)

// ErrInvalidAttribute matches every InvalidAttributeError via errors.Is.
var ErrInvalidAttribute = errors.New("invalid attribute")

// InvalidAttributeError reports a filter or assignment on a field that is
// unknown, not mutable, or given a value of the wrong type.
type InvalidAttributeError struct {
	Field  string
	Reason string
}

func (e *InvalidAttributeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrInvalidAttribute, e.Reason)
	}
	return fmt.Sprintf("%s %q: %s", ErrInvalidAttribute, e.Field, e.Reason)
}

func (e *InvalidAttributeError) Is(target error) bool {
	return target == ErrInvalidAttribute
}
