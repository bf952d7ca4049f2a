package table

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"github.com/vpareek2/BitDB/column"
)

// Row is the one fixed tuple this store knows how to hold.
type Row struct {
	ID       uint32
	Username string
	Email    string
}

// RowSchema describes Row's on-disk layout. It exists so the row codec and
// the ".constants" command read field widths from one place instead of
// duplicating literal offsets.
var RowSchema, RowSize = mustBuildRowSchema()

const (
	maxUsernameLen = 32
	maxEmailLen    = 255
)

func mustBuildRowSchema() (column.Schema, uint32) {
	schema, size, err := column.Build([]column.FieldSpec{
		{Name: "id", Type: column.ColumnTypeInt},
		{Name: "username", Type: column.ColumnTypeText, MaxLength: maxUsernameLen},
		{Name: "email", Type: column.ColumnTypeText, MaxLength: maxEmailLen},
	})
	if err != nil {
		panic(fmt.Sprintf("table: building row schema: %v", err))
	}
	return schema, size
}

// SerializeRow writes row into dst, which must be exactly RowSize bytes.
func SerializeRow(row Row, dst []byte) error {
	if uint32(len(dst)) != RowSize {
		return fmt.Errorf("row: dst length %d, want %d", len(dst), RowSize)
	}
	for i := range dst {
		dst[i] = 0
	}
	idCol, userCol, emailCol := RowSchema[0], RowSchema[1], RowSchema[2]
	binary.LittleEndian.PutUint32(dst[idCol.Offset:idCol.Offset+idCol.ByteSize], row.ID)
	copy(dst[userCol.Offset:userCol.Offset+userCol.MaxLength], row.Username)
	copy(dst[emailCol.Offset:emailCol.Offset+emailCol.MaxLength], row.Email)
	return nil
}

// DeserializeRow reads src, which must be exactly RowSize bytes, into a Row.
func DeserializeRow(src []byte) (Row, error) {
	if uint32(len(src)) != RowSize {
		return Row{}, fmt.Errorf("row: src length %d, want %d", len(src), RowSize)
	}
	idCol, userCol, emailCol := RowSchema[0], RowSchema[1], RowSchema[2]
	id := binary.LittleEndian.Uint32(src[idCol.Offset : idCol.Offset+idCol.ByteSize])
	username := strings.TrimRight(string(src[userCol.Offset:userCol.Offset+userCol.MaxLength]), "\x00")
	email := strings.TrimRight(string(src[emailCol.Offset:emailCol.Offset+emailCol.MaxLength]), "\x00")
	return Row{ID: id, Username: username, Email: email}, nil
}

// ValidateRow enforces the length bounds from spec §6 before a row is ever
// handed to the tree. Returns the exact user-facing message on failure.
func ValidateRow(row Row) error {
	if len(row.Username) > maxUsernameLen || len(row.Email) > maxEmailLen {
		return errors.New("String is too long.")
	}
	return nil
}
