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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseField(t *testing.T) {
	for _, f := range Fields() {
		assert.Equal(t, f, ParseField(f.Name()))
	}
	assert.Equal(t, FieldSessionID, ParseField(" Session_ID "))
	assert.False(t, ParseField("password").IsValid())
	assert.Equal(t, IllegalName, ParseField("password").Name())
}

func TestEnumTable(t *testing.T) {
	assert.Equal(t, []Field{FieldID, FieldEmail, FieldHashedPassword, FieldSessionID, FieldResetToken}, Fields())
	assert.Equal(t, "password hash", FieldHashedPassword.Desc())
	assert.Equal(t, IllegalDesc, Field(9).Desc())
	assert.Equal(t, 4, FieldSessionID.Number())
	assert.Equal(t, "reset_token", FieldResetToken.String())
}

func TestField_Mutable(t *testing.T) {
	assert.False(t, FieldID.Mutable())
	assert.True(t, FieldEmail.Mutable())
	assert.True(t, FieldHashedPassword.Mutable())
	assert.True(t, FieldSessionID.Mutable())
	assert.True(t, FieldResetToken.Mutable())
	assert.False(t, Field(42).Mutable())
}

func TestConditions_QueryFilter(t *testing.T) {
	t.Run("and of equalities", func(t *testing.T) {
		qf, err := Conditions{Where(FieldEmail, "a@b.com"), Where(FieldID, 3)}.QueryFilter()
		require.NoError(t, err)
		assert.Equal(t, "email = ? AND id = ?", qf.Schema)
		assert.Equal(t, []interface{}{"a@b.com", int64(3)}, qf.Args)
	})

	t.Run("nil matches null", func(t *testing.T) {
		var token *string
		qf, err := Conditions{Where(FieldResetToken, token), Where(FieldSessionID, nil)}.QueryFilter()
		require.NoError(t, err)
		assert.Equal(t, "reset_token IS NULL AND session_id IS NULL", qf.Schema)
		assert.Empty(t, qf.Args)
	})

	t.Run("empty filter", func(t *testing.T) {
		_, err := Conditions{}.QueryFilter()
		assert.ErrorIs(t, err, ErrInvalidAttribute)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := Conditions{Where(Field(0), "x")}.QueryFilter()
		assert.ErrorIs(t, err, ErrInvalidAttribute)
	})

	t.Run("wrong value type", func(t *testing.T) {
		_, err := Conditions{Where(FieldID, "1")}.QueryFilter()
		assert.ErrorIs(t, err, ErrInvalidAttribute)

		_, err = Conditions{Where(FieldEmail, 12)}.QueryFilter()
		assert.ErrorIs(t, err, ErrInvalidAttribute)
	})
}

func TestAttributes_Validate(t *testing.T) {
	s := "s1"
	tests := []struct {
		name  string
		attrs Attributes
		field string
	}{
		{"empty", Attributes{}, ""},
		{"id is not mutable", Attributes{FieldEmail: "x@y.com", FieldID: 99}, "id"},
		{"unknown field", Attributes{Field(17): "v"}, IllegalName},
		{"email required", Attributes{FieldEmail: nil}, "email"},
		{"bad type", Attributes{FieldSessionID: 5}, "session_id"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.attrs.Validate()
			require.ErrorIs(t, err, ErrInvalidAttribute)

			var ia *InvalidAttributeError
			require.True(t, errors.As(err, &ia))
			assert.Equal(t, tc.field, ia.Field)
		})
	}

	t.Run("whitelisted", func(t *testing.T) {
		attrs := Attributes{FieldSessionID: &s, FieldResetToken: nil, FieldEmail: "n@b.com"}
		require.NoError(t, attrs.Validate())
		assert.Equal(t, []Field{FieldEmail, FieldSessionID, FieldResetToken}, attrs.Fields())
		assert.Equal(t, "s1", *attrs.StringValue(FieldSessionID))
		assert.Nil(t, attrs.StringValue(FieldResetToken))
	})
}
