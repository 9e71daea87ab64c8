// Package ids generates prefixed, time-sortable record identifiers such as
// "msg_1rK5iqAb3cD5eF7gH9iJ1k".
package ids

import (
	"crypto/rand"
	"strings"
	"time"
)

const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

const (
	timestampLength = 6
	randomLength    = 18
)

// Prefixes used by stored records
const (
	PrefixContact = "msg"
	PrefixVisit   = "vis"
)

// EncodeTimestamp encodes unix seconds as 6 base62 characters. Output sorts
// lexicographically in time order.
func EncodeTimestamp(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	out := make([]byte, timestampLength)
	for i := timestampLength - 1; i >= 0; i-- {
		out[i] = alphabet[seconds%62]
		seconds /= 62
	}
	return string(out)
}

// Random returns n uniformly distributed base62 characters
func Random(n int) string {
	var b strings.Builder
	b.Grow(n)
	buf := make([]byte, n+n/4+4)
	for b.Len() < n {
		if _, err := rand.Read(buf); err != nil {
			panic("ids: failed to read random bytes: " + err.Error())
		}
		for _, c := range buf {
			// 248 is the largest multiple of 62 below 256
			if c >= 248 {
				continue
			}
			b.WriteByte(alphabet[c%62])
			if b.Len() == n {
				break
			}
		}
	}
	return b.String()
}

// New returns prefix_<timestamp><random>
func New(prefix string) string {
	return NewAt(prefix, time.Now())
}

// NewAt is New with an explicit creation time
func NewAt(prefix string, t time.Time) string {
	return prefix + "_" + EncodeTimestamp(t.Unix()) + Random(randomLength)
}
