package table

import (
	"encoding/binary"
	"fmt"

	"github.com/pkg/errors"
)

// Column width limits, excluding the NUL terminator.
const (
	UsernameMaxLength = 32
	EmailMaxLength    = 255
)

const (
	idSize       = 4
	usernameSize = UsernameMaxLength + 1 // + NUL terminator
	emailSize    = EmailMaxLength + 1    // + NUL terminator

	idOffset       = 0
	usernameOffset = idOffset + idSize
	emailOffset    = usernameOffset + usernameSize

	// RowSize is the fixed on-disk width of one row: id + username slot +
	// email slot.
	RowSize = idSize + usernameSize + emailSize
)

// Row is one record of the single table: a uint32 primary key plus two
// bounded text fields. The codec does not validate field lengths — the
// statement preparer has already rejected oversize input before a Row ever
// reaches SerializeRow.
type Row struct {
	ID       uint32
	Username string
	Email    string
}

// SerializeRow writes r into dst, which must be exactly RowSize bytes.
// Strings are copied byte-wise and NUL-terminated within their slot; bytes
// beyond the terminator are left as whatever dst already held.
func SerializeRow(r Row, dst []byte) error {
	if len(dst) != RowSize {
		return errors.Errorf("row: dst has %d bytes, want %d", len(dst), RowSize)
	}

	binary.LittleEndian.PutUint32(dst[idOffset:idOffset+idSize], r.ID)
	putBoundedString(dst[usernameOffset:usernameOffset+usernameSize], r.Username)
	putBoundedString(dst[emailOffset:emailOffset+emailSize], r.Email)
	return nil
}

// DeserializeRow reads a Row out of src, which must be exactly RowSize
// bytes.
func DeserializeRow(src []byte) (Row, error) {
	if len(src) != RowSize {
		return Row{}, errors.Errorf("row: src has %d bytes, want %d", len(src), RowSize)
	}

	return Row{
		ID:       binary.LittleEndian.Uint32(src[idOffset : idOffset+idSize]),
		Username: getBoundedString(src[usernameOffset : usernameOffset+usernameSize]),
		Email:    getBoundedString(src[emailOffset : emailOffset+emailSize]),
	}, nil
}

// putBoundedString copies s into slot, truncating to slot's capacity minus
// the terminator, and NUL-terminates it. It never writes past slot.
func putBoundedString(slot []byte, s string) {
	n := len(slot) - 1
	if len(s) < n {
		n = len(s)
	}
	copy(slot[:n], s[:n])
	slot[n] = 0
}

// getBoundedString reads a NUL-terminated string out of slot.
func getBoundedString(slot []byte) string {
	n := 0
	for n < len(slot) && slot[n] != 0 {
		n++
	}
	return string(slot[:n])
}

func (r Row) String() string {
	return fmt.Sprintf("(%d, %s, %s)", r.ID, r.Username, r.Email)
}
