// Package table holds immutable, typed, in-memory tables loaded from CSV
// files and validated against an explicit schema.
package table

import "fmt"

// Type is the declared type of a column.
type Type int

// Column types. Nullable variants accept the null tokens listed in nullTokens.
const (
	Int Type = iota
	Float
	String
	NullableInt
	NullableFloat
	NullableString
)

func (t Type) String() string {
	switch t {
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "string"
	case NullableInt:
		return "nullable-int"
	case NullableFloat:
		return "nullable-float"
	case NullableString:
		return "nullable-string"
	default:
		return fmt.Sprintf("type(%d)", int(t))
	}
}

// Nullable reports whether the type admits null cells.
func (t Type) Nullable() bool {
	return t == NullableInt || t == NullableFloat || t == NullableString
}

// Column declares one named, typed column.
type Column struct {
	Name string
	Type Type
}

// Schema is the ordered set of columns a source must provide.
type Schema struct {
	Name    string
	Columns []Column
}

// Validate checks the schema itself: it must be named, non-empty and free of
// duplicate column names.
func (s Schema) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: unnamed schema", ErrInvalidSchema)
	}
	if len(s.Columns) == 0 {
		return fmt.Errorf("%w: %s has no columns", ErrInvalidSchema, s.Name)
	}
	seen := make(map[string]struct{}, len(s.Columns))
	for _, c := range s.Columns {
		if c.Name == "" {
			return fmt.Errorf("%w: %s has an unnamed column", ErrInvalidSchema, s.Name)
		}
		if _, dup := seen[c.Name]; dup {
			return fmt.Errorf("%w: %s declares %q twice", ErrInvalidSchema, s.Name, c.Name)
		}
		seen[c.Name] = struct{}{}
	}
	return nil
}
