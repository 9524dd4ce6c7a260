// Package row implements the fixed-width record type stored in each leaf
// cell: a byte-exact codec between a Row value and its 293-byte on-disk
// span.
package row

import (
	"encoding/binary"
	"fmt"
)

const (
	IDSize       = 4
	UsernameSize = 32
	EmailSize    = 255

	idOffset       = 0
	usernameOffset = idOffset + IDSize
	// +1 for the NUL terminator each field reserves on disk.
	usernameFieldSize = UsernameSize + 1
	emailOffset       = usernameOffset + usernameFieldSize
	emailFieldSize    = EmailSize + 1

	// Size is the total width of a serialized row: 4 + 33 + 256.
	Size = idOffset + IDSize + usernameFieldSize + emailFieldSize
)

// Row is the logical record held in one leaf cell.
type Row struct {
	ID       uint32
	Username string
	Email    string
}

// New validates username and email against their field caps before
// returning a Row. Callers that already trust their input (the codec's
// own Deserialize) build a Row literal directly instead.
func New(id uint32, username, email string) (Row, error) {
	if len(username) > UsernameSize {
		return Row{}, fmt.Errorf("row: username too long (%d > %d)", len(username), UsernameSize)
	}
	if len(email) > EmailSize {
		return Row{}, fmt.Errorf("row: email too long (%d > %d)", len(email), EmailSize)
	}
	return Row{ID: id, Username: username, Email: email}, nil
}

// Serialize writes r into dst, which must be exactly Size bytes. Username
// and email are copied in full, including trailing NULs, so two calls with
// the same Row always produce identical bytes.
func Serialize(r Row, dst []byte) error {
	if len(dst) != Size {
		return fmt.Errorf("row: serialize dst is %d bytes, want %d", len(dst), Size)
	}
	if len(r.Username) > UsernameSize {
		return fmt.Errorf("row: username too long (%d > %d)", len(r.Username), UsernameSize)
	}
	if len(r.Email) > EmailSize {
		return fmt.Errorf("row: email too long (%d > %d)", len(r.Email), EmailSize)
	}

	binary.LittleEndian.PutUint32(dst[idOffset:idOffset+IDSize], r.ID)

	for i := 0; i < usernameFieldSize; i++ {
		dst[usernameOffset+i] = 0
	}
	copy(dst[usernameOffset:usernameOffset+usernameFieldSize], r.Username)

	for i := 0; i < emailFieldSize; i++ {
		dst[emailOffset+i] = 0
	}
	copy(dst[emailOffset:emailOffset+emailFieldSize], r.Email)

	return nil
}

// Deserialize is the inverse of Serialize: src must be exactly Size bytes.
func Deserialize(src []byte) (Row, error) {
	if len(src) != Size {
		return Row{}, fmt.Errorf("row: deserialize src is %d bytes, want %d", len(src), Size)
	}

	id := binary.LittleEndian.Uint32(src[idOffset : idOffset+IDSize])
	username := trimNUL(src[usernameOffset : usernameOffset+usernameFieldSize])
	email := trimNUL(src[emailOffset : emailOffset+emailFieldSize])

	return Row{ID: id, Username: username, Email: email}, nil
}

func trimNUL(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
