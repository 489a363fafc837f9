// ABOUTME: Contrastive pair loader for steering vector training data
// ABOUTME: Parses CSV in triplet, labeled, or love/hate layouts into a balanced pair set
package pairs

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"
)

var (
	// ErrUnrecognizedFormat means the CSV header matched no known schema
	ErrUnrecognizedFormat = errors.New("unrecognized contrastive pairs format")
	// ErrEmptyDataset means no usable pairs remained after filtering
	ErrEmptyDataset = errors.New("no usable contrastive pairs after filtering")
)

// Length bounds for individual pair texts. Texts outside these bounds
// produce degenerate direction estimates and are dropped at load time.
const (
	minTextLen = 10
	maxTextLen = 500
)

// Set holds two parallel text sequences of equal length. Pairing is
// purely positional: Positive[i] and Negative[i] form one contrastive
// pair.
type Set struct {
	Positive []string
	Negative []string
}

// Len returns the number of pairs in the set.
func (s *Set) Len() int {
	return len(s.Positive)
}

// LoadFile reads contrastive pairs from a CSV file.
func LoadFile(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening pairs file: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load reads contrastive pairs from CSV data. Recognized schemas:
//
//   - anchor, positive[, negative]: rows with a negative yield one
//     (positive, negative) pair; rows without one are same-class and
//     skipped (they carry no two-class signal).
//   - text1, text2, label: label > 0.5 contributes text1 to the
//     positive list, label < 0.5 contributes text2 to the negative
//     list; both lists are truncated to the shorter length.
//   - prompt, love_response, hate_response: love_response is positive,
//     hate_response is negative.
func Load(r io.Reader) (*Set, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(strings.ToLower(name))] = i
	}

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV rows: %w", err)
	}

	var set *Set
	switch {
	case hasCols(cols, "anchor", "positive"):
		set = loadTripletFormat(rows, cols)
	case hasCols(cols, "love_response", "hate_response"):
		set = loadLoveHateFormat(rows, cols)
	case hasCols(cols, "text1", "text2", "label"):
		set = loadLabeledFormat(rows, cols)
	default:
		return nil, fmt.Errorf("%w: columns %v", ErrUnrecognizedFormat, header)
	}

	if set.Len() == 0 {
		return nil, ErrEmptyDataset
	}
	return set, nil
}

func hasCols(cols map[string]int, names ...string) bool {
	for _, n := range names {
		if _, ok := cols[n]; !ok {
			return false
		}
	}
	return true
}

func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// usableText rejects empty, pathologically short, or pathologically
// long texts.
func usableText(s string) bool {
	n := utf8.RuneCountInString(s)
	return n > minTextLen && n < maxTextLen
}

func loadTripletFormat(rows [][]string, cols map[string]int) *Set {
	negIdx, hasNeg := cols["negative"]

	set := &Set{}
	for _, row := range rows {
		pos := field(row, cols["positive"])
		if !hasNeg {
			continue
		}
		neg := field(row, negIdx)
		if !usableText(pos) || !usableText(neg) {
			continue
		}
		set.Positive = append(set.Positive, pos)
		set.Negative = append(set.Negative, neg)
	}
	return set
}

func loadLoveHateFormat(rows [][]string, cols map[string]int) *Set {
	set := &Set{}
	for _, row := range rows {
		pos := field(row, cols["love_response"])
		neg := field(row, cols["hate_response"])
		if !usableText(pos) || !usableText(neg) {
			continue
		}
		set.Positive = append(set.Positive, pos)
		set.Negative = append(set.Negative, neg)
	}
	return set
}

// loadLabeledFormat splits labeled rows into one-sided contributions and
// truncates both lists to the shorter length. The truncation drops
// excess rows from the longer side without re-pairing by similarity;
// this matches the established behavior and is kept for compatibility.
func loadLabeledFormat(rows [][]string, cols map[string]int) *Set {
	var positive, negative []string
	for _, row := range rows {
		label, err := strconv.ParseFloat(field(row, cols["label"]), 64)
		if err != nil {
			continue
		}

		switch {
		case label > 0.5:
			if t := field(row, cols["text1"]); usableText(t) {
				positive = append(positive, t)
			}
		case label < 0.5:
			if t := field(row, cols["text2"]); usableText(t) {
				negative = append(negative, t)
			}
		}
	}

	n := len(positive)
	if len(negative) < n {
		n = len(negative)
	}
	return &Set{
		Positive: positive[:n],
		Negative: negative[:n],
	}
}
