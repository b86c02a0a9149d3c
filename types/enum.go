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
	"sort"
	"strings"
)

// Common illegal/default values used by enums.
const (
	IllegalValue = -1
	IllegalName  = "unknown"
	IllegalDesc  = "unknown"
)

// BaseEnum represents a basic enum contract used by domain types.
type BaseEnum interface {
	IsValid() bool
	Number() int
	String() string
	Desc() string
	Name() string
}

// EnumEntry is the name and description of one enum value.
type EnumEntry struct {
	Name string
	Desc string
}

// EnumTable holds the entries behind an int-based enum so its BaseEnum
// methods are plain lookups.
type EnumTable[E ~int] struct {
	entries map[E]EnumEntry
	values  []E
}

func NewEnumTable[E ~int](entries map[E]EnumEntry) *EnumTable[E] {
	values := make([]E, 0, len(entries))
	for v := range entries {
		values = append(values, v)
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })
	return &EnumTable[E]{entries: entries, values: values}
}

func (t *EnumTable[E]) Valid(v E) bool {
	_, ok := t.entries[v]
	return ok
}

func (t *EnumTable[E]) Name(v E) string {
	if e, ok := t.entries[v]; ok {
		return e.Name
	}
	return IllegalName
}

func (t *EnumTable[E]) Desc(v E) string {
	if e, ok := t.entries[v]; ok {
		return e.Desc
	}
	return IllegalDesc
}

// Values returns every value in ascending order.
func (t *EnumTable[E]) Values() []E {
	out := make([]E, len(t.values))
	copy(out, t.values)
	return out
}

// Parse looks a value up by name, ignoring case and surrounding spaces.
// Unknown names yield IllegalValue.
func (t *EnumTable[E]) Parse(name string) E {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, v := range t.values {
		if strings.ToLower(t.entries[v].Name) == n {
			return v
		}
	}
	return E(IllegalValue)
}
