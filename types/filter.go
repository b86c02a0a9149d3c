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
	"fmt"
	"sort"
	"strings"
)

// QueryFilter describes a WHERE clause schema and its argument values.
type QueryFilter struct {
	Schema string
	Args   []interface{}
}

// NewQueryFilter creates a new query filter with schema and args.
func NewQueryFilter(schema string, args ...interface{}) *QueryFilter {
	return &QueryFilter{schema, args}
}

// Condition is a single equality test on a field. A nil Value (or a nil
// *string) matches records where the field holds no value.
type Condition struct {
	Field Field
	Value interface{}
}

// Where builds an equality condition.
func Where(field Field, value interface{}) Condition {
	return Condition{Field: field, Value: value}
}

// Conditions are implicitly ANDed.
type Conditions []Condition

// Validate checks that there is at least one condition and that every
// condition names a known field with a value of the right shape.
func (cs Conditions) Validate() error {
	if len(cs) == 0 {
		return &InvalidAttributeError{Field: "", Reason: "empty filter"}
	}
	for _, c := range cs {
		if !c.Field.IsValid() {
			return &InvalidAttributeError{Field: c.Field.Name(), Reason: "unknown field"}
		}
		if _, err := normalize(c.Field, c.Value); err != nil {
			return err
		}
	}
	return nil
}

// QueryFilter compiles the conditions into an AND-joined WHERE clause.
// Column names come from the Field enum, never from caller input.
func (cs Conditions) QueryFilter() (*QueryFilter, error) {
	if err := cs.Validate(); err != nil {
		return nil, err
	}
	parts := make([]string, 0, len(cs))
	args := make([]interface{}, 0, len(cs))
	for _, c := range cs {
		v, _ := normalize(c.Field, c.Value)
		if v == nil {
			parts = append(parts, fmt.Sprintf("%s IS NULL", c.Field.Column()))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s = ?", c.Field.Column()))
		args = append(args, v)
	}
	return NewQueryFilter(strings.Join(parts, " AND "), args...), nil
}

func (cs Conditions) String() string {
	names := make([]string, len(cs))
	for i, c := range cs {
		names[i] = c.Field.Name()
	}
	return strings.Join(names, ",")
}

// Attributes maps fields to the values they should be assigned.
type Attributes map[Field]interface{}

// Validate checks every key against the mutable whitelist before anything
// is applied. It fails on the first offending field in column order.
func (a Attributes) Validate() error {
	if len(a) == 0 {
		return &InvalidAttributeError{Field: "", Reason: "no attributes"}
	}
	for _, f := range a.Fields() {
		if !f.IsValid() {
			return &InvalidAttributeError{Field: f.Name(), Reason: "unknown field"}
		}
		if !f.Mutable() {
			return &InvalidAttributeError{Field: f.Name(), Reason: "field is not mutable"}
		}
		v, err := normalize(f, a[f])
		if err != nil {
			return err
		}
		if v == nil && !f.Nullable() {
			return &InvalidAttributeError{Field: f.Name(), Reason: "value is required"}
		}
	}
	return nil
}

// Fields returns the keys sorted by field number.
func (a Attributes) Fields() []Field {
	out := make([]Field, 0, len(a))
	for f := range a {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// StringValue returns the assigned value of a string field, nil meaning
// "no value". It must only be called after Validate succeeded.
func (a Attributes) StringValue(f Field) *string {
	v, _ := normalize(f, a[f])
	if v == nil {
		return nil
	}
	s := v.(string)
	return &s
}

// normalize unwraps pointers and checks the dynamic type of v against the
// field. The result is nil, an int64 (id) or a string.
func normalize(f Field, v interface{}) (interface{}, error) {
	if f == FieldID {
		switch n := v.(type) {
		case int:
			return int64(n), nil
		case int32:
			return int64(n), nil
		case int64:
			return n, nil
		case uint:
			return int64(n), nil
		case uint32:
			return int64(n), nil
		case nil:
			return nil, nil
		default:
			return nil, &InvalidAttributeError{Field: f.Name(), Reason: fmt.Sprintf("unsupported value type %T", v)}
		}
	}
	switch s := v.(type) {
	case nil:
		return nil, nil
	case string:
		return s, nil
	case *string:
		if s == nil {
			return nil, nil
		}
		return *s, nil
	default:
		return nil, &InvalidAttributeError{Field: f.Name(), Reason: fmt.Sprintf("unsupported value type %T", v)}
	}
}
