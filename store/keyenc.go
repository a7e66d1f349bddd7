package store

import (
	"encoding/binary"
	"fmt"

	"go.dohmane.dev/record"
)

// encodeKey turns a primary-key value into the sortable []byte key the
// radix tree indexes on. Integer keys are encoded sign-bit-flipped
// big-endian so the tree's natural lexicographic order is also numeric
// ascending order (negative local keys sort before positive
// server-assigned ones) -- this is what gives cascade traversal its
// documented, deterministic child ordering for free.
func encodeKey(pk any) []byte {
	switch v := record.NormalizeKey(pk).(type) {
	case string:
		b := make([]byte, 0, len(v)+1)
		b = append(b, 's')
		return append(b, v...)
	case int64:
		b := make([]byte, 9)
		b[0] = 'i'
		binary.BigEndian.PutUint64(b[1:], uint64(v)^(1<<63))
		return b
	default:
		return []byte(fmt.Sprintf("x:%v", v))
	}
}
