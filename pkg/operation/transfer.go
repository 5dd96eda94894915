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

package operation

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/urlmigrate/pkg/log"
	"github.com/walteh/urlmigrate/pkg/transfer"
)

// 🚚 TransferOperation migrates every URL of a list and checkpoints into the mapping file
type TransferOperation struct {
	Engine      *transfer.Engine
	ListPath    string
	MappingPath string

	// Summary holds the counts once Execute returns, also on interruption
	Summary *transfer.Summary
}

func (o *TransferOperation) Name() string { return "transfer" }

func (o *TransferOperation) Paths() (string, string) { return o.ListPath, o.MappingPath }

func (o *TransferOperation) Execute(ctx context.Context) error {
	console := log.FromContext(ctx)

	if o.Engine == nil {
		return errors.New("transfer engine is required")
	}

	existed := fileExists(o.MappingPath)

	sum, err := o.Engine.RunFile(ctx, o.ListPath, o.MappingPath)
	o.Summary = sum
	if sum != nil && sum.Processed() > 0 {
		console.LogFileOperation(ctx, log.FileOperation{
			Path:       o.MappingPath,
			Kind:       log.KindMapping,
			Status:     fmt.Sprintf("+%d entries", sum.Processed()),
			IsNew:      !existed,
			IsModified: existed,
			Count:      sum.Processed(),
		})
	}
	if err != nil {
		return err
	}

	console.Infof("%d urls: %d migrated, %d resumed, %d duplicates, %s transferred",
		sum.Total, sum.Migrated, sum.Resumed, sum.Duplicates, humanize.Bytes(uint64(sum.Bytes)))

	if failed := sum.DownloadFailed + sum.UploadFailed; failed > 0 {
		console.Warningf("%d urls failed (%d download, %d upload); their mapping entries hold a failure marker",
			failed, sum.DownloadFailed, sum.UploadFailed)
	}

	return nil
}
