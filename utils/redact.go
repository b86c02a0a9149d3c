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
	"regexp"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	DefaultRedaction = "***"
	DefaultSeparator = ";"
)

// FilterDatum replaces the value of every "field=value" pair whose field is
// listed in fields with redaction. Pairs are delimited by separator; a
// pair may also be preceded by whitespace inside a delimited segment, and
// the last segment of the message is treated as delimited by its end.
func FilterDatum(fields []string, redaction, message, separator string) string {
	re := fieldPattern(fields)
	if re == nil {
		return message
	}
	return filterDatum(re, redaction, message, separator)
}

func filterDatum(re *regexp.Regexp, redaction, message, separator string) string {
	if separator == "" {
		return re.ReplaceAllString(message, "${1}${2}="+escapeReplacement(redaction))
	}
	segments := strings.Split(message, separator)
	for i, seg := range segments {
		segments[i] = re.ReplaceAllString(seg, "${1}${2}="+escapeReplacement(redaction))
	}
	return strings.Join(segments, separator)
}

func fieldPattern(fields []string) *regexp.Regexp {
	if len(fields) == 0 {
		return nil
	}
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = regexp.QuoteMeta(f)
	}
	return regexp.MustCompile(`(?s)(^|\s)(` + strings.Join(quoted, "|") + `)=.*$`)
}

func escapeReplacement(s string) string { return strings.ReplaceAll(s, "$", "$$") }

// RedactingFormatter masks sensitive fields before delegating to another
// formatter. Both the message text and structured entry data are covered.
type RedactingFormatter struct {
	Formatter logrus.Formatter
	Redaction string
	Separator string

	fields map[string]struct{}
	re     *regexp.Regexp
}

// NewRedactingFormatter wraps inner using the default redaction marker
// and separator.
func NewRedactingFormatter(inner logrus.Formatter, fields []string) *RedactingFormatter {
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return &RedactingFormatter{
		Formatter: inner,
		Redaction: DefaultRedaction,
		Separator: DefaultSeparator,
		fields:    set,
		re:        fieldPattern(fields),
	}
}

func (f *RedactingFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	if f.re == nil {
		return f.Formatter.Format(entry)
	}
	e := *entry
	e.Message = filterDatum(f.re, f.Redaction, entry.Message, f.Separator)
	if len(entry.Data) > 0 {
		e.Data = make(logrus.Fields, len(entry.Data))
		for k, v := range entry.Data {
			if _, ok := f.fields[k]; ok {
				v = f.Redaction
			} else if s, ok := v.(string); ok {
				v = filterDatum(f.re, f.Redaction, s, f.Separator)
			} else if err, ok := v.(error); ok {
				v = filterDatum(f.re, f.Redaction, err.Error(), f.Separator)
			}
			e.Data[k] = v
		}
	}
	return f.Formatter.Format(&e)
}

func sortedKeys(data logrus.Fields) []string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
