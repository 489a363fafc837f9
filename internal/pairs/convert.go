// ABOUTME: Converter from love/hate response CSVs to the triplet layout
// ABOUTME: Used by the CLI to normalize legacy training data files
package pairs

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Convert rewrites a prompt/love_response/hate_response CSV into the
// anchor/positive/negative triplet layout. Rows failing the length
// bounds are dropped. Returns the number of converted rows.
func Convert(r io.Reader, w io.Writer) (int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return 0, fmt.Errorf("reading CSV header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(strings.ToLower(name))] = i
	}
	if !hasCols(cols, "prompt", "love_response", "hate_response") {
		return 0, fmt.Errorf("%w: columns %v", ErrUnrecognizedFormat, header)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"anchor", "positive", "negative"}); err != nil {
		return 0, fmt.Errorf("writing header: %w", err)
	}

	count := 0
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, fmt.Errorf("reading row: %w", err)
		}

		anchor := field(row, cols["prompt"])
		pos := field(row, cols["love_response"])
		neg := field(row, cols["hate_response"])
		if anchor == "" || !usableText(pos) || !usableText(neg) {
			continue
		}

		if err := cw.Write([]string{anchor, pos, neg}); err != nil {
			return count, fmt.Errorf("writing row: %w", err)
		}
		count++
	}

	cw.Flush()
	return count, cw.Error()
}

// ConvertFile converts srcPath into dstPath, creating dstPath.
func ConvertFile(srcPath, dstPath string) (int, error) {
	src, err := os.Open(srcPath)
	if err != nil {
		return 0, fmt.Errorf("opening source: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(dstPath)
	if err != nil {
		return 0, fmt.Errorf("creating destination: %w", err)
	}

	count, err := Convert(src, dst)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	return count, err
}
