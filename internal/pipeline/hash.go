package pipeline

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// input is one raw batch file as read from the source.
type input struct {
	name string
	data []byte
}

// fingerprint returns a SHA-256 hex digest over the names and contents of inputs, in order.
func fingerprint(inputs []input) string {
	h := sha256.New()
	var size [8]byte
	for _, in := range inputs {
		binary.BigEndian.PutUint64(size[:], uint64(len(in.name)))
		h.Write(size[:])
		h.Write([]byte(in.name))
		binary.BigEndian.PutUint64(size[:], uint64(len(in.data)))
		h.Write(size[:])
		h.Write(in.data)
	}
	return hex.EncodeToString(h.Sum(nil))
}
