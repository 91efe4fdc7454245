package resource

import (
	"fmt"
	"strings"
)

// RowWidth is the number of bytes rendered per array row.
const RowWidth = 8

// hexColumn is the width the hex part of a row is padded to.
const hexColumn = 3 * RowWidth

// Row is one chunk of at most RowWidth bytes.
type Row []byte

// Rows splits data into RowWidth chunks. The final chunk may be shorter.
func Rows(data []byte) []Row {
	rows := make([]Row, 0, (len(data)+RowWidth-1)/RowWidth)
	for start := 0; start < len(data); start += RowWidth {
		end := min(start+RowWidth, len(data))
		rows = append(rows, Row(data[start:end]))
	}
	return rows
}

// Hex renders the row as space separated "0xHH," literals.
func (r Row) Hex() string {
	var sb strings.Builder
	for i, b := range r {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "0x%02X,", b)
	}
	return sb.String()
}

// Text renders the row's transliteration.
func (r Row) Text() string {
	text := make([]byte, len(r))
	for i, b := range r {
		text[i] = Transliterate(b)
	}
	return string(text)
}

// String renders the hex literals followed by the transliteration comment.
func (r Row) String() string {
	return fmt.Sprintf("%-*s // %s", hexColumn, r.Hex(), r.Text())
}

// Transliterate maps b to itself when it is a printable ASCII character
// that needs no escaping inside a character literal, and to '.' otherwise.
func Transliterate(b byte) byte {
	if b < 0x20 || b > 0x7E || b == '\\' || b == '\'' {
		return '.'
	}
	return b
}
