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

package status

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
)

// 🎨 Display configuration
const (
	urlIndent   = 2  // spaces to indent url entries
	nameWidth   = 40 // width for the object key
	statusWidth = 16 // width for status text
	sizeWidth   = 9  // width for the size column
)

// 🎯 FormatURLLine formats one URL outcome as an aligned, colored console line
func FormatURLLine(info URLInfo) string {
	var prefix string
	switch info.Status {
	case StatusMigrated:
		prefix = color.GreenString("✓")
	case StatusResumed, StatusDuplicate:
		prefix = color.HiBlackString("-")
	case StatusDownloadFailed, StatusUploadFailed:
		prefix = color.RedString("✗")
	default:
		prefix = color.YellowString("?")
	}

	name := info.Key
	if name == "" {
		name = info.URL
	}

	size := ""
	if info.Bytes > 0 {
		size = humanize.Bytes(uint64(info.Bytes))
	}

	return fmt.Sprintf("%s%s %s %s %s",
		strings.Repeat(" ", urlIndent),
		prefix,
		fmt.Sprintf("%-*s", nameWidth, name),
		fmt.Sprintf("%-*s", statusWidth, info.Status),
		fmt.Sprintf("%*s", sizeWidth, size),
	)
}
