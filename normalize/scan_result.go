// Copyright (C) 2026 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package normalize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/DutchRican/a11y-reports/database/models"
	"github.com/pkg/errors"
	"gorm.io/datatypes"
)

var ErrEmptyPayload = errors.New("payload is empty")

// FlexibleTime accepts RFC3339 strings, zone-less date times, plain dates and
// unix timestamps in milliseconds. Zone-less values keep their wall clock and
// are placed into a location by Resolve.
type FlexibleTime struct {
	time.Time
	naive bool
}

type timeLayout struct {
	layout string
	zoned  bool
}

var flexibleTimeLayouts = []timeLayout{
	{time.RFC3339Nano, true},
	{"2006-01-02T15:04:05.000Z07:00", true},
	{"2006-01-02T15:04:05.999999999", false},
	{"2006-01-02 15:04:05.999999999", false},
	{"2006-01-02", false},
}

// shorter digit strings are years or compact dates such as 20240301, not epoch milliseconds
const minEpochMillisDigits = 10

func (f *FlexibleTime) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" || s == `""` {
		return nil
	}

	if strings.HasPrefix(s, `"`) {
		str, err := strconv.Unquote(s)
		if err != nil {
			return err
		}
		s = str
	}

	t, naive, err := parseFlexibleTime(s, time.UTC)
	if err != nil {
		return err
	}
	f.Time, f.naive = t, naive
	return nil
}

// Resolve returns the instant in loc. Values without a zone are read as wall clock time in loc.
func (f FlexibleTime) Resolve(loc *time.Location) time.Time {
	if !f.naive || f.IsZero() {
		return f.Time
	}
	if loc == nil {
		loc = time.Local
	}
	return time.Date(f.Year(), f.Month(), f.Day(), f.Hour(), f.Minute(), f.Second(), f.Nanosecond(), loc)
}

// ParseFlexibleTime parses the date formats accepted by uploads and query parameters.
// Values without a zone are read in loc.
func ParseFlexibleTime(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, _, err := parseFlexibleTime(s, loc)
	return t, err
}

func parseFlexibleTime(s string, loc *time.Location) (time.Time, bool, error) {
	if isEpochMillis(s) {
		if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
			return time.UnixMilli(ms), false, nil
		}
	}
	for _, l := range flexibleTimeLayouts {
		if t, err := time.ParseInLocation(l.layout, s, loc); err == nil {
			return t, !l.zoned, nil
		}
	}
	return time.Time{}, false, fmt.Errorf("invalid date value %q", s)
}

func isEpochMillis(s string) bool {
	digits := strings.TrimPrefix(s, "-")
	if len(digits) < minEpochMillisDigits {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// RawScanResult is a scan as uploaded by the test runner.
// specName, pageUrl and timestamp are accepted for uploads produced by older runners.
type RawScanResult struct {
	TestName   string             `json:"testName"`
	SpecName   string             `json:"specName"`
	URL        string             `json:"url"`
	PageURL    string             `json:"pageUrl"`
	Created    FlexibleTime       `json:"created"`
	Timestamp  FlexibleTime       `json:"timestamp"`
	Violations []models.Violation `json:"violations"`
}

func (r RawScanResult) GetTestName() string {
	if r.TestName != "" {
		return r.TestName
	}
	return r.SpecName
}

func (r RawScanResult) GetURL() string {
	if r.URL != "" {
		return r.URL
	}
	return r.PageURL
}

// ParseScanPayload splits a json document into single scan records.
// A document is either a single object or an array of objects.
func ParseScanPayload(b []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 {
		return nil, ErrEmptyPayload
	}

	switch trimmed[0] {
	case '{':
		if !json.Valid(trimmed) {
			return nil, errors.New("invalid json object")
		}
		return []json.RawMessage{trimmed}, nil
	case '[':
		var records []json.RawMessage
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, errors.Wrap(err, "invalid json array")
		}
		return records, nil
	}
	return nil, errors.New("expected a json object or an array of json objects")
}

// DecodeRawScanResult decodes a single record. On failure it still tries to
// return the test name so callers can report which record was rejected.
func DecodeRawScanResult(record json.RawMessage) (RawScanResult, error) {
	var raw RawScanResult
	err := ValidateRecordShape(record)
	if err == nil {
		err = json.Unmarshal(record, &raw)
	}
	if err != nil {
		var named struct {
			TestName string `json:"testName"`
			SpecName string `json:"specName"`
		}
		_ = json.Unmarshal(record, &named)
		return RawScanResult{TestName: named.TestName, SpecName: named.SpecName}, err
	}
	return raw, nil
}

// NormalizeScanResult converts an uploaded scan into the canonical record.
// Impact counts are always derived from the violations, counts provided by the
// uploader are ignored. Timestamps without a zone are read in loc. The result
// is not attached to a project yet.
func NormalizeScanResult(raw RawScanResult, now time.Time, loc *time.Location) models.ScanResult {
	violations := raw.Violations
	if violations == nil {
		violations = []models.Violation{}
	}

	created := raw.Created.Resolve(loc)
	if created.IsZero() {
		created = raw.Timestamp.Resolve(loc)
	}
	if created.IsZero() {
		created = now
	}

	counts := CountImpacts(violations)

	return models.ScanResult{
		TestName:        strings.TrimSpace(raw.GetTestName()),
		URL:             strings.TrimSpace(raw.GetURL()),
		Created:         created,
		Violations:      datatypes.JSONSlice[models.Violation](violations),
		ImpactCounts:    datatypes.NewJSONType(counts),
		TotalViolations: counts.Total(),
	}
}

// ScanDay returns the calendar day of t in loc formatted as YYYY-MM-DD.
func ScanDay(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(time.DateOnly)
}
