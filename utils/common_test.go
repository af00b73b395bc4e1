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

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeFileName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain name", input: "scan.json", expected: "scan.json"},
		{name: "nested path", input: "results/2026/scan.json", expected: "scan.json"},
		{name: "windows path", input: `C:\results\scan.json`, expected: "scan.json"},
		{name: "spaces and umlauts", input: "über scan.json", expected: "_ber_scan.json"},
		{name: "parent directory", input: "..", expected: "upload"},
		{name: "empty", input: "", expected: "upload"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SafeFileName(tt.input))
		})
	}
}

func TestOrDefault(t *testing.T) {
	assert.Equal(t, "fallback", OrDefault(nil, "fallback"))
	assert.Equal(t, "value", OrDefault(Ptr("value"), "fallback"))
}

func TestSliceHelpers(t *testing.T) {
	doubled := Map([]int{2, 4}, func(i int) int { return i * 2 })
	assert.Equal(t, []int{4, 8}, doubled)

	found, ok := Find(doubled, func(i int) bool { return i > 5 })
	assert.True(t, ok)
	assert.Equal(t, 8, found)

	assert.Equal(t, []int{1, 2, 3}, Flat([][]int{{1}, {2, 3}}))
}
