// Copyright 2020 Grail Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package nucleosome

import (
	"io"

	"github.com/grailbio/base/tsv"
)

// Call is a confirmed nucleosome position, [Start, End) on Chrom.
type Call struct {
	Chrom string
	Start PosType
	End   PosType
}

// WriteCalls writes calls as headerless three-column BED lines,
//   chr<id>\t<start>\t<end>
// in the given order.
func WriteCalls(w io.Writer, calls []Call) error {
	tw := tsv.NewWriter(w)
	for _, c := range calls {
		tw.WriteString(chromName(c.Chrom))
		tw.WriteInt64(int64(c.Start))
		tw.WriteInt64(int64(c.End))
		if err := tw.EndLine(); err != nil {
			return err
		}
	}
	return tw.Flush()
}
