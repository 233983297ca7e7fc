// Package media implements the upload ingestion and delivery pipeline:
// identifier generation, content classification, storage key construction,
// and the HTTP handlers that serve stored objects back.
package media

import (
	"crypto/rand"
	"encoding/base32"
	"encoding/binary"
	"time"
)

// epoch offsets the encoded timestamp so identifiers stay short. Chosen near
// the system's creation date; the time part grows by one base32 character
// roughly every few years.
const epoch = 631152000 // 1990-01-01T00:00:00Z

const alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

var base32NoPad = base32.StdEncoding.WithPadding(base32.NoPadding)

// NewID returns a short, time-ordered, collision-resistant identifier of the
// form "<time part>-<random part>". The time part keeps identifiers roughly
// sortable; the 7 random alphanumeric characters defeat enumeration without
// requiring a uniqueness check against storage. Concurrent calls are
// independent and safe.
func NewID() string {
	return timePart(time.Now().Unix()-epoch) + "-" + randomPart(7)
}

// timePart base32-encodes the minimal big-endian representation of ts.
func timePart(ts int64) string {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(ts))

	// Strip leading all-zero bytes, keeping at least one.
	start := 0
	for start < len(buf)-1 && buf[start] == 0 {
		start++
	}

	return base32NoPad.EncodeToString(buf[start:])
}

// randomPart returns n random characters drawn from [A-Za-z0-9].
func randomPart(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms.
		panic(err)
	}
	for i, b := range buf {
		buf[i] = alphanumeric[int(b)%len(alphanumeric)]
	}
	return string(buf)
}
