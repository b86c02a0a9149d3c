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

// Field identifies a column of the user record. Only the enumerated
// fields can be filtered on or assigned.
type Field int

const (
	FieldID Field = iota + 1
	FieldEmail
	FieldHashedPassword
	FieldSessionID
	FieldResetToken
)

var _ BaseEnum = FieldID

var fieldTable = NewEnumTable(map[Field]EnumEntry{
	FieldID:             {"id", "store assigned primary key"},
	FieldEmail:          {"email", "login email address"},
	FieldHashedPassword: {"hashed_password", "password hash"},
	FieldSessionID:      {"session_id", "active session token"},
	FieldResetToken:     {"reset_token", "pending password reset token"},
})

// Fields returns every known field in declaration order.
func Fields() []Field { return fieldTable.Values() }

// ParseField resolves a column name into a Field. Unknown names yield a
// field for which IsValid reports false.
func ParseField(name string) Field { return fieldTable.Parse(name) }

func (f Field) IsValid() bool { return fieldTable.Valid(f) }

func (f Field) Number() int { return int(f) }

func (f Field) Name() string { return fieldTable.Name(f) }

func (f Field) String() string { return f.Name() }

func (f Field) Desc() string { return fieldTable.Desc(f) }

// Column is the database column backing the field.
func (f Field) Column() string { return f.Name() }

// Mutable reports whether the field may be assigned after creation.
func (f Field) Mutable() bool {
	switch f {
	case FieldEmail, FieldHashedPassword, FieldSessionID, FieldResetToken:
		return true
	default:
		return false
	}
}

// Nullable reports whether the field may hold no value.
func (f Field) Nullable() bool {
	return f == FieldSessionID || f == FieldResetToken
}
