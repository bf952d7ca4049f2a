// Package column describes the fixed-width layout of a row: the offset and
// byte size of each field within the serialized tuple. BitDB has exactly one
// table shape, so this is used once (table.RowSchema) to avoid duplicating
// field offsets between the row codec and the ".constants" printer.
package column

import "fmt"

type ColumnType int

const (
	ColumnTypeInt ColumnType = iota
	ColumnTypeText
)

// Column is a laid-out field: Offset and ByteSize are computed by Build,
// not supplied by the caller.
type Column struct {
	Name      string
	Type      ColumnType
	Offset    uint32
	ByteSize  uint32
	MaxLength uint32 // for Text columns: the usable (non-terminator) length
}

type Schema []Column

// FieldSpec is what a caller declares; Build turns a list of these into a
// laid-out Schema with offsets assigned in order.
type FieldSpec struct {
	Name      string
	Type      ColumnType
	MaxLength uint32 // required for Text fields
}

// Build lays out fields back-to-back in declaration order. A Text field of
// MaxLength n occupies n+1 bytes on disk (the extra byte is a NUL
// terminator so a TrimRight on read can't confuse "n bytes of content"
// with "n bytes of content, no terminator").
func Build(fields []FieldSpec) (Schema, uint32, error) {
	schema := make(Schema, 0, len(fields))
	var offset uint32
	for _, f := range fields {
		switch f.Type {
		case ColumnTypeInt:
			schema = append(schema, Column{Name: f.Name, Type: f.Type, Offset: offset, ByteSize: 4})
			offset += 4
		case ColumnTypeText:
			if f.MaxLength == 0 {
				return nil, 0, fmt.Errorf("column: text field %q must have MaxLength > 0", f.Name)
			}
			size := f.MaxLength + 1
			schema = append(schema, Column{Name: f.Name, Type: f.Type, Offset: offset, ByteSize: size, MaxLength: f.MaxLength})
			offset += size
		default:
			return nil, 0, fmt.Errorf("column: unsupported type for field %q", f.Name)
		}
	}
	if len(schema) == 0 {
		return nil, 0, fmt.Errorf("column: schema must have at least one field")
	}
	return schema, offset, nil
}
