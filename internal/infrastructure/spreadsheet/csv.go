package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/sutram/service-registry/internal/core/ingest"
)

var (
	utf8BOM = []byte{0xEF, 0xBB, 0xBF}

	// candidateDelimiters is the sniffing order; earlier wins on ties.
	candidateDelimiters = []rune{',', ';', '\t', '|'}

	errInvalidUTF8 = errors.New("content is not valid UTF-8")
)

// readCSV tries UTF-8 with a sniffed delimiter first and falls back once to
// semicolon-separated Latin-1, the usual shape of spreadsheets saved by
// Portuguese-locale Excel.
func (r *Reader) readCSV(data []byte) (*ingest.Table, error) {
	t, err := parseUTF8CSV(data)
	if err == nil {
		return t, nil
	}
	r.log.Debug().Err(err).Msg("utf-8 csv decode failed, retrying as latin-1")

	t, retryErr := parseCSV(charmap.ISO8859_1.NewDecoder().Reader(bytes.NewReader(data)), ';')
	if retryErr != nil {
		return nil, fmt.Errorf("utf-8: %v; latin-1: %w", err, retryErr)
	}
	return t, nil
}

func parseUTF8CSV(data []byte) (*ingest.Table, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return nil, errInvalidUTF8
	}
	return parseCSV(bytes.NewReader(data), sniffDelimiter(data))
}

// sniffDelimiter picks the candidate occurring most often, outside quotes,
// on the first non-blank line. Defaults to a comma.
func sniffDelimiter(data []byte) rune {
	var line string
	for _, l := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(l) != "" {
			line = l
			break
		}
	}

	counts := make(map[rune]int, len(candidateDelimiters))
	quoted := false
	for _, c := range line {
		if c == '"' {
			quoted = !quoted
			continue
		}
		if !quoted {
			counts[c]++
		}
	}

	best, bestCount := ',', 0
	for _, d := range candidateDelimiters {
		if counts[d] > bestCount {
			best, bestCount = d, counts[d]
		}
	}
	return best
}

// parseCSV reads every record. Rows shorter than the header are padded by the
// caller; a row wider than the header is a tokenizing error.
func parseCSV(src io.Reader, delim rune) (*ingest.Table, error) {
	cr := csv.NewReader(src)
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var rows [][]any
	width := -1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if width < 0 {
			width = len(rec)
		} else if len(rec) > width {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("line %d: expected %d fields, saw %d", line, width, len(rec))
		}
		row := make([]any, len(rec))
		for i, v := range rec {
			row[i] = v
		}
		rows = append(rows, row)
	}
	return newTable(rows)
}
