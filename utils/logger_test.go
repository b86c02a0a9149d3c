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

package utils

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterDatum(t *testing.T) {
	fields := []string{"password", "date_of_birth"}

	tests := []struct {
		name      string
		message   string
		separator string
		want      string
	}{
		{
			name:      "semicolon separated",
			message:   "name=egg;email=eggmin@eggsample.com;password=eggcellent;date_of_birth=12/12/1986;",
			separator: ";",
			want:      "name=egg;email=eggmin@eggsample.com;password=xxx;date_of_birth=xxx;",
		},
		{
			name:      "other separator",
			message:   "name=bob|password=bobbycool|date_of_birth=03/04/1993|",
			separator: "|",
			want:      "name=bob|password=xxx|date_of_birth=xxx|",
		},
		{
			name:      "trailing pair without separator",
			message:   "name=bob;password=hunter2",
			separator: ";",
			want:      "name=bob;password=xxx",
		},
		{
			name:      "pair after message text",
			message:   "login failed password=hunter2; attempts=3;",
			separator: ";",
			want:      "login failed password=xxx; attempts=3;",
		},
		{
			name:      "field name must be whole",
			message:   "old_password=a;password=b;",
			separator: ";",
			want:      "old_password=a;password=xxx;",
		},
		{
			name:      "nothing to redact",
			message:   "name=bob;",
			separator: ";",
			want:      "name=bob;",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FilterDatum(fields, "xxx", tc.message, tc.separator))
		})
	}

	assert.Equal(t, "password=a;", FilterDatum(nil, "xxx", "password=a;", ";"))
}

func TestRedactingFormatter_Format(t *testing.T) {
	inner := &Log4jColorFormatter{LoggerName: "TEST", DisableColors: true}
	f := NewRedactingFormatter(inner, []string{"email", "session_id"})

	entry := logrus.NewEntry(logrus.New()).WithFields(logrus.Fields{
		"email": "a@b.com",
		"id":    7,
		"note":  "session_id=abc;",
		"error": errors.New("lookup failed email=a@b.com"),
	})
	entry.Message = "user updated email=a@b.com;session_id=abc;"
	entry.Level = logrus.InfoLevel

	b, err := f.Format(entry)
	require.NoError(t, err)

	out := string(b)
	assert.NotContains(t, out, "a@b.com")
	assert.NotContains(t, out, "abc")
	assert.Contains(t, out, "email=***;session_id=***;")
	assert.Contains(t, out, "id=7;")

	// the caller's entry is left untouched
	assert.Equal(t, "a@b.com", entry.Data["email"])
}

func TestNewLogger_WithRedaction(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("REDACT", WithWriter(&buf), WithRedaction("reset_token"))

	l.WithField("reset_token", "tok-1").Info("issued reset_token=tok-1;")

	out := buf.String()
	assert.NotContains(t, out, "tok-1")
	assert.Contains(t, out, "reset_token=***")
	assert.True(t, SetLoggerLevel("REDACT", "error"))
	assert.False(t, SetLoggerLevel("MISSING", "error"))

	buf.Reset()
	l.Info("dropped")
	assert.Empty(t, buf.String())
}

func TestJSONLogFormatter_Format(t *testing.T) {
	f := &JSONLogFormatter{LoggerName: "JSON"}
	entry := logrus.NewEntry(logrus.New()).WithField("k", "v")
	entry.Message = "hello"
	entry.Level = logrus.WarnLevel

	b, err := f.Format(entry)
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(string(b), "\n"))

	var rec map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &rec))
	assert.Equal(t, "warning", rec["level"])
	assert.Equal(t, "JSON", rec["model"])
	assert.Equal(t, "hello", rec["message"])
	assert.Equal(t, map[string]interface{}{"k": "v"}, rec["fields"])
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, ParseLogLevel(" DEBUG "))
	assert.Equal(t, logrus.WarnLevel, ParseLogLevel("warning"))
	assert.Equal(t, logrus.InfoLevel, ParseLogLevel(""))
	assert.Equal(t, logrus.InfoLevel, ParseLogLevel("bogus"))
}
