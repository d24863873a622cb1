package table

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// ctxCheckInterval is how many rows are parsed between cancellation checks.
const ctxCheckInterval = 4096

// nullTokens are the cell values read as null in nullable columns.
var nullTokens = map[string]struct{}{ //nolint:gochecknoglobals // read-only lookup
	"":     {},
	"NA":   {},
	"N/A":  {},
	"NaN":  {},
	"nan":  {},
	"NULL": {},
	"null": {},
	"#N/A": {},
}

const utf8BOM = "\ufeff"

// Load opens path and reads it as a CSV file with a header row.
func Load(ctx context.Context, path string, schema Schema) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", schema.Name, err)
	}
	defer func() { _ = f.Close() }()

	t, err := Read(ctx, f, schema)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Read parses CSV from r. The header row must contain every schema column;
// extra columns are ignored. Cells are converted to the declared column type.
func Read(ctx context.Context, r io.Reader, schema Schema) (*Table, error) {
	if err := schema.Validate(); err != nil {
		return nil, err
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s: empty input, no header", ErrSchemaMismatch, schema.Name)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s header: %w", ErrParse, schema.Name, err)
	}

	positions, err := resolveHeader(schema, header)
	if err != nil {
		return nil, err
	}

	t := &Table{
		schema: schema,
		cols:   make([]*column, len(schema.Columns)),
		index:  make(map[string]int, len(schema.Columns)),
	}
	for i, c := range schema.Columns {
		t.cols[i] = newColumn(c.Type, 0)
		t.index[c.Name] = i
	}

	line := 1
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%w: %s line %d: %w", ErrParse, schema.Name, line, err)
		}
		if line%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if isBlank(record) {
			continue
		}
		for i, c := range schema.Columns {
			pos := positions[i]
			cell := ""
			if pos < len(record) {
				cell = record[pos]
			}
			if err := t.cols[i].append(cell); err != nil {
				return nil, fmt.Errorf("%w: %s line %d column %q: %w", ErrParse, schema.Name, line, c.Name, err)
			}
		}
		t.rows++
	}
	return t, nil
}

// resolveHeader maps each schema column to its position in header.
func resolveHeader(schema Schema, header []string) ([]int, error) {
	at := make(map[string]int, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		h = strings.TrimSpace(h)
		if _, dup := at[h]; !dup {
			at[h] = i
		}
	}
	positions := make([]int, len(schema.Columns))
	var missing []string
	for i, c := range schema.Columns {
		pos, ok := at[c.Name]
		if !ok {
			missing = append(missing, c.Name)
			continue
		}
		positions[i] = pos
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s is missing columns %s", ErrSchemaMismatch, schema.Name, strings.Join(missing, ", "))
	}
	return positions, nil
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func (c *column) append(cell string) error {
	isNull := false
	if c.typ.Nullable() {
		_, isNull = nullTokens[strings.TrimSpace(cell)]
		c.valid = append(c.valid, !isNull)
	}

	switch c.typ {
	case String, NullableString:
		if isNull {
			cell = ""
		}
		c.strs = append(c.strs, cell)
	case Int, NullableInt:
		var v int64
		if !isNull {
			parsed, err := parseInt(cell)
			if err != nil {
				return err
			}
			v = parsed
		}
		c.ints = append(c.ints, v)
	case Float, NullableFloat:
		var v float64
		if !isNull {
			parsed, err := parseFloat(cell)
			if err != nil {
				return err
			}
			v = parsed
		}
		c.floats = append(c.floats, v)
	}
	return nil
}

// parseInt accepts plain integers and floats with no fractional part ("12.0"),
// which is how integer columns with missing values are often exported.
func parseInt(cell string) (int64, error) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return 0, errors.New("empty value in non-nullable column")
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("invalid integer %q", cell)
	}
	return int64(f), nil
}

func parseFloat(cell string) (float64, error) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return 0, errors.New("empty value in non-nullable column")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return 0, fmt.Errorf("invalid number %q", cell)
	}
	return f, nil
}
