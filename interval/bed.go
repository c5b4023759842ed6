package interval

import (
	"bufio"
	"io"
	"strconv"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/log"
	gunsafe "github.com/grailbio/base/unsafe"
	"github.com/grailbio/base/vcontext"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

// getTokens identifies up to the first len(tokens) tokens from curLine,
// returning the number of tokens saved.  Any (group of) characters <= ' ' is
// treated as a delimiter.
func getTokens(tokens [][]byte, curLine []byte) int {
	posEnd := 0
	lineLen := len(curLine)
	for tokenIdx := range tokens {
		// These simple loops beat the standard library string-split functions
		// when only a few leading columns are needed.
		pos := posEnd
		for ; pos != lineLen; pos++ {
			if curLine[pos] > ' ' {
				break
			}
		}
		if pos == lineLen {
			return tokenIdx
		}
		posEnd = pos
		for ; posEnd != lineLen; posEnd++ {
			if curLine[posEnd] <= ' ' {
				break
			}
		}
		tokens[tokenIdx] = curLine[pos:posEnd]
	}
	return len(tokens)
}

// ReadBEDEntries loads the first three columns of every line of a BED-like
// stream.  Unlike an interval union, nothing is merged or reordered:
// duplicates and overlaps are returned as-is.  Blank lines, and lines starting
// with '#', "track" or "browser", are skipped.
func ReadBEDEntries(reader io.Reader) (entries []Entry, err error) {
	scanner := bufio.NewScanner(reader)
	var tokens [3][]byte
	lineIdx := 0
	for scanner.Scan() {
		lineIdx++
		curLine := scanner.Bytes()
		nToken := getTokens(tokens[:], curLine)
		if nToken == 0 || isBEDHeader(tokens[0]) {
			continue
		}
		if nToken != 3 {
			return nil, errors.Errorf("interval.ReadBEDEntries: line %d has fewer tokens than expected", lineIdx)
		}
		var start, end int
		if start, err = strconv.Atoi(gunsafe.BytesToString(tokens[1])); err != nil {
			return nil, errors.Wrapf(err, "interval.ReadBEDEntries: line %d", lineIdx)
		}
		if end, err = strconv.Atoi(gunsafe.BytesToString(tokens[2])); err != nil {
			return nil, errors.Wrapf(err, "interval.ReadBEDEntries: line %d", lineIdx)
		}
		if start < 0 || end < start || end >= PosTypeMax {
			return nil, errors.Errorf("interval.ReadBEDEntries: invalid coordinate pair on line %d", lineIdx)
		}
		entries = append(entries, Entry{
			// tokens[0] aliases the scanner's buffer, so it must be copied.
			ChrName: string(tokens[0]),
			Start0:  PosType(start),
			End:     PosType(end),
		})
	}
	if err = scanner.Err(); err != nil {
		return nil, err
	}
	log.Debug.Printf("BED loaded, %d interval(s).", len(entries))
	return entries, nil
}

func isBEDHeader(tok []byte) bool {
	if len(tok) > 0 && tok[0] == '#' {
		return true
	}
	s := gunsafe.BytesToString(tok)
	return s == "track" || s == "browser"
}

// ReadBEDEntriesFromPath is a wrapper for ReadBEDEntries that takes a path
// instead of an io.Reader.  Gzipped input is detected by extension.
func ReadBEDEntriesFromPath(path string) (entries []Entry, err error) {
	ctx := vcontext.Background()
	var infile file.File
	if infile, err = file.Open(ctx, path); err != nil {
		return
	}
	defer func() {
		if cerr := infile.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	reader := io.Reader(infile.Reader(ctx))
	switch fileio.DetermineType(path) {
	case fileio.Gzip:
		if reader, err = gzip.NewReader(reader); err != nil {
			return
		}
	}
	return ReadBEDEntries(reader)
}
