package core

import (
	"fmt"
	"strings"
)

// hexDump renders data for trace logs as hex bytes followed by a
// printable-ASCII view, unprintable bytes shown as dots.
func hexDump(data []byte) string {
	var b strings.Builder

	for _, c := range data {
		fmt.Fprintf(&b, "%02X ", c)
	}

	b.WriteByte(';')
	for _, c := range data {
		if c < 32 || c > 126 {
			b.WriteByte('.')
			continue
		}
		b.WriteByte(c)
	}

	return b.String()
}
