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

package database

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/tomoncle/credstore/utils"
)

func TestToFields(t *testing.T) {
	assert.Nil(t, toFields(nil))
	assert.Equal(t, logrus.Fields{"a": 1, "b": "x"}, toFields([]interface{}{"a", 1, "b", "x"}))
	assert.Equal(t, logrus.Fields{"a": 1, "!BADKEY": "dangling"}, toFields([]interface{}{"a", 1, "dangling"}))
}

func TestDefaultLogger_RedactsFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewDefaultLogger(utils.NewLogger("DB-TEST", utils.WithWriter(&buf), utils.WithRedaction("password")))
	l.SetLevel(LogLevelDebug)

	l.Debug("connecting", "host", "db.internal", "password", "hunter2")
	assert.Contains(t, buf.String(), "host=db.internal;")
	assert.Contains(t, buf.String(), "password=***;")
	assert.NotContains(t, buf.String(), "hunter2")
}
