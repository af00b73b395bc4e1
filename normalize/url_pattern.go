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
	"net/url"
	"regexp"
	"strings"
)

const IDPlaceholder = ":id"

var (
	numericSegment = regexp.MustCompile(`^[0-9]+$`)
	hexLikeSegment = regexp.MustCompile(`^[0-9a-fA-F]{6,}$`)
)

func looksLikeID(segment string) bool {
	return numericSegment.MatchString(segment) || hexLikeSegment.MatchString(segment)
}

func collapsePath(path string) string {
	segments := strings.Split(path, "/")
	for i, s := range segments {
		if s != "" && looksLikeID(s) {
			segments[i] = IDPlaceholder
		}
	}
	return strings.Join(segments, "/")
}

// CollapseURLPattern replaces path segments which look like identifiers with ":id".
// Absolute urls keep scheme and host, query and fragment are dropped.
//
//	https://example.com/users/12345/edit?tab=1 -> https://example.com/users/:id/edit
//	/orders/a1b2c3d4                           -> /orders/:id
func CollapseURLPattern(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		// keep whatever we got, but still strip the query
		path, _, _ := strings.Cut(raw, "?")
		return collapsePath(path)
	}

	path := collapsePath(u.EscapedPath())
	if u.Host == "" {
		return path
	}

	if u.Scheme == "" {
		return u.Host + path
	}
	return u.Scheme + "://" + u.Host + path
}
