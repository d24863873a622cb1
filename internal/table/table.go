package table

import "fmt"

// NullInt is an int64 that may be null.
type NullInt struct {
	V     int64
	Valid bool
}

// NullFloat is a float64 that may be null.
type NullFloat struct {
	V     float64
	Valid bool
}

// NullString is a string that may be null.
type NullString struct {
	V     string
	Valid bool
}

// column stores one typed column. Exactly one of ints/floats/strs is used;
// valid is nil for non-nullable columns.
type column struct {
	typ    Type
	ints   []int64
	floats []float64
	strs   []string
	valid  []bool
}

func newColumn(typ Type, capacity int) *column {
	c := &column{typ: typ}
	switch typ {
	case Int, NullableInt:
		c.ints = make([]int64, 0, capacity)
	case Float, NullableFloat:
		c.floats = make([]float64, 0, capacity)
	case String, NullableString:
		c.strs = make([]string, 0, capacity)
	}
	if typ.Nullable() {
		c.valid = make([]bool, 0, capacity)
	}
	return c
}

// Table is an immutable set of typed columns of equal length.
type Table struct {
	schema Schema
	rows   int
	cols   []*column
	index  map[string]int
}

// Name returns the schema name the table was loaded with.
func (t *Table) Name() string { return t.schema.Name }

// Schema returns the schema the table was validated against.
func (t *Table) Schema() Schema {
	cols := make([]Column, len(t.schema.Columns))
	copy(cols, t.schema.Columns)
	return Schema{Name: t.schema.Name, Columns: cols}
}

// Len returns the number of rows.
func (t *Table) Len() int { return t.rows }

func (t *Table) column(name string, want Type) (*column, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrNoColumn, t.schema.Name, name)
	}
	c := t.cols[i]
	if c.typ != want {
		return nil, fmt.Errorf("%w: %s.%s is %s, not %s", ErrColumnType, t.schema.Name, name, c.typ, want)
	}
	return c, nil
}

// IntColumn reads a non-nullable int column.
type IntColumn struct{ c *column }

// At returns the value at row i.
func (ic IntColumn) At(i int) int64 { return ic.c.ints[i] }

// FloatColumn reads a non-nullable float column.
type FloatColumn struct{ c *column }

// At returns the value at row i.
func (fc FloatColumn) At(i int) float64 { return fc.c.floats[i] }

// StringColumn reads a non-nullable string column.
type StringColumn struct{ c *column }

// At returns the value at row i.
func (sc StringColumn) At(i int) string { return sc.c.strs[i] }

// NullIntColumn reads a nullable int column.
type NullIntColumn struct{ c *column }

// At returns the value at row i.
func (nc NullIntColumn) At(i int) NullInt {
	return NullInt{V: nc.c.ints[i], Valid: nc.c.valid[i]}
}

// NullFloatColumn reads a nullable float column.
type NullFloatColumn struct{ c *column }

// At returns the value at row i.
func (nc NullFloatColumn) At(i int) NullFloat {
	return NullFloat{V: nc.c.floats[i], Valid: nc.c.valid[i]}
}

// NullStringColumn reads a nullable string column.
type NullStringColumn struct{ c *column }

// At returns the value at row i.
func (nc NullStringColumn) At(i int) NullString {
	return NullString{V: nc.c.strs[i], Valid: nc.c.valid[i]}
}

// Binder resolves typed column readers by name and remembers the first
// failure, so a decoder can bind every column it needs and check once.
type Binder struct {
	t   *Table
	err error
}

// Bind starts binding columns of t.
func Bind(t *Table) *Binder { return &Binder{t: t} }

// Err returns the first binding failure, if any.
func (b *Binder) Err() error { return b.err }

func (b *Binder) lookup(name string, want Type) *column {
	if b.err != nil {
		return nil
	}
	c, err := b.t.column(name, want)
	if err != nil {
		b.err = err
		return nil
	}
	return c
}

// Int binds a non-nullable int column.
func (b *Binder) Int(name string) IntColumn { return IntColumn{b.lookup(name, Int)} }

// Float binds a non-nullable float column.
func (b *Binder) Float(name string) FloatColumn { return FloatColumn{b.lookup(name, Float)} }

// String binds a non-nullable string column.
func (b *Binder) String(name string) StringColumn { return StringColumn{b.lookup(name, String)} }

// NullInt binds a nullable int column.
func (b *Binder) NullInt(name string) NullIntColumn {
	return NullIntColumn{b.lookup(name, NullableInt)}
}

// NullFloat binds a nullable float column.
func (b *Binder) NullFloat(name string) NullFloatColumn {
	return NullFloatColumn{b.lookup(name, NullableFloat)}
}

// NullString binds a nullable string column.
func (b *Binder) NullString(name string) NullStringColumn {
	return NullStringColumn{b.lookup(name, NullableString)}
}
