package headers

import (
	"encoding/binary"

	"github.com/cespare/xxhash"
)

// Fingerprint returns the xxhash of the h. Two `Headers` with the same names
// and the same ordered values have the same fingerprint.
//
// Every name, value count and value is length-prefixed, so no choice of bytes
// inside the names or values can make two different `Headers` hash the same
// input.
func (h *Headers) Fingerprint() uint64 {
	d := xxhash.New()
	b := make([]byte, binary.MaxVarintLen64)
	writeLen := func(l int) {
		d.Write(b[:binary.PutUvarint(b, uint64(l))])
	}

	for _, n := range h.Names() {
		writeLen(len(n))
		d.Write([]byte(n))

		vs := h.m[n]
		writeLen(len(vs))
		for _, v := range vs {
			writeLen(len(v))
			d.Write([]byte(v))
		}
	}

	return d.Sum64()
}
