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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const src = "https://firebasestorage.googleapis.com/v0/b/app.appspot.com/o/"

func TestKeys(t *testing.T) {
	tests := []struct {
		name       string
		escapes    map[string]string
		source     string
		wantKey    string
		wantStage  string
		wantPublic string
		wantErr    bool
	}{
		{
			name:       "nested_object",
			escapes:    map[string]string{"%2F": "/"},
			source:     src + "users%2Fabc%2Fimages%2Fa.png?alt=media&token=1",
			wantKey:    "users/abc/images/a.png",
			wantStage:  "users_abc_images_a.png",
			wantPublic: "https://cdn.example.com/users%2Fabc%2Fimages%2Fa.png",
		},
		{
			name:       "flat_object",
			escapes:    map[string]string{"%2F": "/"},
			source:     src + "a.png?token=1",
			wantKey:    "a.png",
			wantStage:  "a.png",
			wantPublic: "https://cdn.example.com/a.png",
		},
		{
			name:       "extra_escape",
			escapes:    map[string]string{"%2F": "/", "%20": " "},
			source:     src + "my%20files%2Fa%20b.png?token=1",
			wantKey:    "my files/a b.png",
			wantStage:  "my files_a b.png",
			wantPublic: "https://cdn.example.com/my%20files%2Fa%20b.png",
		},
		{
			name:       "no_escapes_keeps_encoding",
			escapes:    nil,
			source:     src + "images%2Fa.png?token=1",
			wantKey:    "images%2Fa.png",
			wantStage:  "images%2Fa.png",
			wantPublic: "https://cdn.example.com/images%2Fa.png",
		},
		{
			name:    "empty_segment",
			escapes: map[string]string{"%2F": "/"},
			source:  src + "?token=1",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := NewKeys(tt.escapes, "_")

			key, err := k.ObjectKey(tt.source)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKey, key)
			assert.Equal(t, tt.wantStage, k.StagingName(key))
			assert.Equal(t, tt.wantPublic, k.PublicURL("https://cdn.example.com/", key))
		})
	}
}
