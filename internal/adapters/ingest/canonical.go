// Package ingest reads match rows into model.Table: the canonical CSV
// schema and converters for FBref exports.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/okian/pele/internal/domain/model"
)

// Input formats understood by Read.
const (
	FormatCanonical   = "canonical"
	FormatFBref       = "fbref"
	FormatFBrefSeason = "fbref-season"
)

// CanonicalColumns is the full canonical header: identity columns followed
// by every known stat.
func CanonicalColumns() []string {
	cols := model.IdentityColumns()
	for _, s := range model.KnownStats() {
		cols = append(cols, string(s))
	}
	return cols
}

// Read parses r in the named format.
func Read(format string, r io.Reader) (model.Table, error) {
	return readSource(format, "", r)
}

// readSource is Read with IDs synthesized by the FBref importers prefixed
// with source.
func readSource(format, source string, r io.Reader) (model.Table, error) {
	switch strings.ToLower(format) {
	case "", FormatCanonical:
		return ReadCanonical(r)
	case FormatFBref:
		return importFBref(r, source)
	case FormatFBrefSeason:
		return importFBrefSeason(r, source)
	}
	return model.Table{}, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
}

// ReadCanonical parses a canonical CSV. The header becomes Table.Columns.
// Identity columns are kept as text, known stats are parsed as numbers
// (an empty cell is 0) and any other column is carried in the header only.
func ReadCanonical(r io.Reader) (model.Table, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = false

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return model.Table{}, ErrEmptyInput
	}
	if err != nil {
		return model.Table{}, fmt.Errorf("%w: %w", ErrHeader, err)
	}
	header = normalizeAll(header)
	if err := checkHeader(header); err != nil {
		return model.Table{}, err
	}

	t := model.Table{Columns: header}
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return model.Table{}, fmt.Errorf("%w: line %d: %w", ErrMalformedValue, line, err)
		}
		row := model.MatchRow{Stats: make(map[model.Stat]float64, len(header))}
		for i, col := range header {
			cell := strings.TrimSpace(rec[i])
			if model.IsIdentity(col) {
				row.SetIdentity(col, NormalizeText(cell))
				continue
			}
			if !knownStat(col) {
				continue
			}
			v, err := parseStrict(cell)
			if err != nil {
				return model.Table{}, fmt.Errorf("%w: line %d column %s: %q", ErrMalformedValue, line, col, cell)
			}
			row.Stats[model.Stat(col)] = v
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func checkHeader(header []string) error {
	seen := make(map[string]bool, len(header))
	for i, h := range header {
		if h == "" {
			return fmt.Errorf("%w: empty column name at position %d", ErrHeader, i+1)
		}
		if seen[h] {
			return fmt.Errorf("%w: duplicate column %s", ErrHeader, h)
		}
		seen[h] = true
	}
	return nil
}

var statSet = func() map[string]bool {
	m := make(map[string]bool)
	for _, s := range model.KnownStats() {
		m[string(s)] = true
	}
	return m
}()

func knownStat(col string) bool { return statSet[col] }

func parseStrict(cell string) (float64, error) {
	if cell == "" {
		return 0, nil
	}
	return strconv.ParseFloat(cell, 64)
}

// parseLenient accepts thousands separators and reads anything else
// unparsable as 0.
func parseLenient(cell string) float64 {
	cell = strings.ReplaceAll(strings.TrimSpace(cell), ",", "")
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0
	}
	return v
}

// WriteCanonical writes t as CSV using t.Columns as the header. Columns
// outside the schema are written empty.
func WriteCanonical(w io.Writer, t model.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	rec := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, col := range t.Columns {
			if v, ok := row.Identity(col); ok {
				rec[i] = v
				continue
			}
			if knownStat(col) {
				rec[i] = strconv.FormatFloat(row.Stat(model.Stat(col)), 'f', -1, 64)
				continue
			}
			rec[i] = ""
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
