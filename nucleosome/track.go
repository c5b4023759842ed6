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
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/grailbio/base/tsv"
	"github.com/pkg/errors"
)

// Track is a fixed-step, step-1 integer score track: Scores[i] belongs to
// position Start + i of chromosome Chrom.
type Track struct {
	// Chrom is the chromosome ID without any "chr" prefix.
	Chrom  string
	Start  PosType
	Scores []int32
}

// End returns the last position covered by the track.
func (t *Track) End() PosType {
	return t.Start + PosType(len(t.Scores)) - 1
}

// ChromID strips the "chr" prefix from a reference name.  Chromosome IDs are
// stored bare and always written back out with the prefix.
func ChromID(name string) string {
	return strings.TrimPrefix(name, "chr")
}

func chromName(id string) string {
	return "chr" + id
}

// WriteTrack writes t as a fixedStep wiggle track: a
//   fixedStep chrom=chr<id> start=<start> step=1
// header followed by one score per line.
func WriteTrack(w io.Writer, t *Track) error {
	tw := tsv.NewWriter(w)
	tw.WriteString(fmt.Sprintf("fixedStep chrom=%s start=%d step=1", chromName(t.Chrom), t.Start))
	if err := tw.EndLine(); err != nil {
		return err
	}
	for _, s := range t.Scores {
		tw.WriteInt64(int64(s))
		if err := tw.EndLine(); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// parseTrackHeader parses the fixedStep header line.
func parseTrackHeader(line string) (chrom string, start PosType, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 || fields[0] != "fixedStep" {
		return "", 0, errors.Errorf("expected fixedStep header, got %q", line)
	}
	var haveChrom, haveStart bool
	for _, f := range fields[1:] {
		eq := strings.IndexByte(f, '=')
		if eq <= 0 {
			return "", 0, errors.Errorf("malformed header field %q", f)
		}
		key, val := f[:eq], f[eq+1:]
		switch key {
		case "chrom":
			if val == "" {
				return "", 0, errors.New("empty chrom in header")
			}
			chrom = ChromID(val)
			haveChrom = true
		case "start":
			var s int64
			if s, err = strconv.ParseInt(val, 10, 32); err != nil {
				return "", 0, errors.Wrap(err, "header start")
			}
			start = PosType(s)
			haveStart = true
		case "step":
			if val != "1" {
				return "", 0, errors.Errorf("only step=1 tracks are supported, got step=%s", val)
			}
		case "span":
			if val != "1" {
				return "", 0, errors.Errorf("only span=1 tracks are supported, got span=%s", val)
			}
		default:
			return "", 0, errors.Errorf("unknown header field %q", key)
		}
	}
	if !haveChrom || !haveStart {
		return "", 0, errors.Errorf("header %q lacks chrom= or start=", line)
	}
	return chrom, start, nil
}

// ReadTrack parses a track written by WriteTrack.  Every line after the
// header must hold exactly one integer; the only tolerated blank lines are
// trailing ones.  Malformed input yields an *InputFormatError and no track.
func ReadTrack(r io.Reader) (*Track, error) {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, err
		}
		return nil, &EmptyInputError{What: "track header"}
	}
	chrom, start, err := parseTrackHeader(scanner.Text())
	if err != nil {
		return nil, &InputFormatError{Line: 1, Err: err}
	}
	t := &Track{Chrom: chrom, Start: start}
	lineIdx := 1
	firstBlank := 0
	for scanner.Scan() {
		lineIdx++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			if firstBlank == 0 {
				firstBlank = lineIdx
			}
			continue
		}
		if firstBlank != 0 {
			return nil, &InputFormatError{Line: firstBlank, Err: errors.New("blank line inside track")}
		}
		v, err := strconv.ParseInt(line, 10, 32)
		if err != nil {
			return nil, &InputFormatError{Line: lineIdx, Err: errors.Wrap(err, "score")}
		}
		t.Scores = append(t.Scores, int32(v))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(t.Scores) == 0 {
		return nil, &EmptyInputError{What: "track positions"}
	}
	return t, nil
}
