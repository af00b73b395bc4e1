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
	"testing"
	"time"

	"github.com/DutchRican/a11y-reports/database/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeScanResult(t *testing.T) {
	now := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)

	t.Run("should recompute impact counts and ignore the uploaded ones", func(t *testing.T) {
		records, err := ParseScanPayload([]byte(`{
			"testName": "login",
			"url": "https://example.com/login",
			"impactCounts": {"critical": 99},
			"totalViolations": 99,
			"violations": [
				{"id": "color-contrast", "impact": "serious", "help": "contrast"},
				{"id": "label", "impact": "critical", "help": "label"},
				{"id": "region", "impact": "moderate", "help": "region"},
				{"id": "region", "impact": "serious", "help": "region"}
			]
		}`))
		require.NoError(t, err)
		require.Len(t, records, 1)

		raw, err := DecodeRawScanResult(records[0])
		require.NoError(t, err)

		scan := NormalizeScanResult(raw, now, time.UTC)
		counts := scan.ImpactCounts.Data()

		assert.Equal(t, models.ImpactCounts{Critical: 1, Serious: 2, Moderate: 1}, counts)
		assert.Equal(t, 4, scan.TotalViolations)
		assert.Equal(t, counts.Critical+counts.Serious+counts.Moderate+counts.Minor, scan.TotalViolations)
	})

	t.Run("should default violations to an empty list and created to now", func(t *testing.T) {
		raw := RawScanResult{TestName: "home", URL: "https://example.com"}

		scan := NormalizeScanResult(raw, now, time.UTC)

		assert.NotNil(t, scan.Violations)
		assert.Len(t, scan.Violations, 0)
		assert.Equal(t, now, scan.Created)
		assert.Equal(t, 0, scan.TotalViolations)
	})

	t.Run("should keep unknown impacts out of the total but count them separately", func(t *testing.T) {
		raw := RawScanResult{TestName: "home", URL: "https://example.com", Violations: []models.Violation{
			{ID: "a", Impact: "critical"},
			{ID: "b", Impact: "catastrophic"},
			{ID: "c", Impact: ""},
		}}

		scan := NormalizeScanResult(raw, now, time.UTC)

		assert.Equal(t, 1, scan.TotalViolations)
		assert.Equal(t, 2, scan.ImpactCounts.Data().Unknown)
		assert.Len(t, scan.Violations, 3)
	})

	t.Run("should accept the legacy field names", func(t *testing.T) {
		raw, err := DecodeRawScanResult([]byte(`{"specName": "checkout", "pageUrl": "https://example.com/checkout", "timestamp": "2026-01-02T03:04:05Z"}`))
		require.NoError(t, err)

		scan := NormalizeScanResult(raw, now, time.UTC)

		assert.Equal(t, "checkout", scan.TestName)
		assert.Equal(t, "https://example.com/checkout", scan.URL)
		assert.Equal(t, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), scan.Created.UTC())
	})

	t.Run("should accept unix milliseconds and plain dates", func(t *testing.T) {
		raw, err := DecodeRawScanResult([]byte(`{"testName": "a", "url": "b", "created": 1767225600000}`))
		require.NoError(t, err)
		assert.Equal(t, time.UnixMilli(1767225600000), raw.Created.Time)

		raw, err = DecodeRawScanResult([]byte(`{"testName": "a", "url": "b", "created": "2026-01-01"}`))
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), raw.Created.Time)
	})

	t.Run("should read timestamps without a zone in the day boundary location", func(t *testing.T) {
		berlin, err := time.LoadLocation("Europe/Berlin")
		require.NoError(t, err)

		raw, err := DecodeRawScanResult([]byte(`{"testName": "a", "url": "b", "created": "2024-03-01T23:30:00"}`))
		require.NoError(t, err)

		scan := NormalizeScanResult(raw, now, berlin)

		assert.True(t, scan.Created.Equal(time.Date(2024, 3, 1, 22, 30, 0, 0, time.UTC)))
		assert.Equal(t, "2024-03-01", ScanDay(scan.Created, berlin))
	})

	t.Run("should keep the zone of zoned timestamps", func(t *testing.T) {
		berlin, err := time.LoadLocation("Europe/Berlin")
		require.NoError(t, err)

		raw, err := DecodeRawScanResult([]byte(`{"testName": "a", "url": "b", "timestamp": "2024-03-01T23:30:00Z"}`))
		require.NoError(t, err)

		scan := NormalizeScanResult(raw, now, berlin)

		assert.True(t, scan.Created.Equal(time.Date(2024, 3, 1, 23, 30, 0, 0, time.UTC)))
		assert.Equal(t, "2024-03-02", ScanDay(scan.Created, berlin))
	})

	t.Run("should not read short digit strings as epoch milliseconds", func(t *testing.T) {
		for _, created := range []string{`"2024"`, `2024`, `"20240301"`} {
			_, err := DecodeRawScanResult([]byte(`{"testName": "a", "url": "b", "created": ` + created + `}`))
			assert.Error(t, err, created)
		}

		raw, err := DecodeRawScanResult([]byte(`{"testName": "a", "url": "b", "created": "1767225600000"}`))
		require.NoError(t, err)
		assert.Equal(t, time.UnixMilli(1767225600000), raw.Created.Time)
	})

	t.Run("should report the test name of an undecodable record", func(t *testing.T) {
		raw, err := DecodeRawScanResult([]byte(`{"testName": "broken", "created": "yesterday"}`))
		assert.Error(t, err)
		assert.Equal(t, "broken", raw.GetTestName())
	})
}

func TestParseScanPayload(t *testing.T) {
	t.Run("should split an array into records", func(t *testing.T) {
		records, err := ParseScanPayload([]byte(`[{"testName":"a"},{"testName":"b"}]`))
		require.NoError(t, err)
		assert.Len(t, records, 2)
	})

	t.Run("should fail on empty input", func(t *testing.T) {
		_, err := ParseScanPayload([]byte("  \n"))
		assert.ErrorIs(t, err, ErrEmptyPayload)
	})

	t.Run("should fail on invalid json", func(t *testing.T) {
		_, err := ParseScanPayload([]byte(`{"testName":`))
		assert.Error(t, err)

		_, err = ParseScanPayload([]byte(`"just a string"`))
		assert.Error(t, err)
	})
}

func TestScanDay(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	// 23:30 UTC is already the next day in Berlin
	ts := time.Date(2026, 6, 1, 23, 30, 0, 0, time.UTC)

	assert.Equal(t, "2026-06-01", ScanDay(ts, time.UTC))
	assert.Equal(t, "2026-06-02", ScanDay(ts, berlin))
}

func TestImpactRank(t *testing.T) {
	for i, level := range models.ImpactLevels {
		rank, ok := ImpactRank(string(level))
		assert.True(t, ok)
		assert.Equal(t, i, rank)
	}

	rank, ok := ImpactRank("blocker")
	assert.False(t, ok)
	assert.Equal(t, -1, rank)

	levels, ok := ImpactsAtLeast("serious")
	assert.True(t, ok)
	assert.Equal(t, []string{"serious", "critical"}, levels)

	_, ok = ImpactsAtLeast("nope")
	assert.False(t, ok)
}
