// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package transfer

import (
	"sort"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🔑 Keys derives destination keys and names from source URLs
type Keys struct {
	escapes   [][2]string
	separator string
}

// NewKeys builds a Keys. escapes maps an encoded sequence in the source path to its
// literal form, e.g. "%2F" → "/". separator replaces "/" in staging file names.
func NewKeys(escapes map[string]string, separator string) *Keys {
	k := &Keys{separator: separator}
	for from, to := range escapes {
		if from == "" {
			continue
		}
		k.escapes = append(k.escapes, [2]string{from, to})
	}
	// longest first so overlapping sequences resolve the same way every run
	sort.Slice(k.escapes, func(i, j int) bool {
		if len(k.escapes[i][0]) != len(k.escapes[j][0]) {
			return len(k.escapes[i][0]) > len(k.escapes[j][0])
		}
		return k.escapes[i][0] < k.escapes[j][0]
	})
	return k
}

// ObjectKey is the last path segment of source, before the query, with escapes resolved.
func (k *Keys) ObjectKey(source string) (string, error) {
	path := source
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	segment := path[strings.LastIndex(path, "/")+1:]

	key := segment
	for _, e := range k.escapes {
		key = strings.ReplaceAll(key, e[0], e[1])
	}
	key = strings.TrimLeft(key, "/")
	if key == "" {
		return "", errors.Errorf("no object name in %s", source)
	}
	return key, nil
}

// StagingName flattens key into a single file name.
func (k *Keys) StagingName(key string) string {
	return strings.ReplaceAll(key, "/", k.separator)
}

// PublicURL re-encodes key the way the public endpoint expects and joins it to base.
func (k *Keys) PublicURL(base string, key string) string {
	encoded := key
	for _, e := range k.escapes {
		if e[1] == "" {
			continue
		}
		encoded = strings.ReplaceAll(encoded, e[1], e[0])
	}
	return strings.TrimRight(base, "/") + "/" + encoded
}
