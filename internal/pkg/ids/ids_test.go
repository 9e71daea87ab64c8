package ids

import (
	"regexp"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeTimestamp(t *testing.T) {
	tests := []struct {
		name    string
		seconds int64
		want    string
	}{
		{"zero", 0, "000000"},
		{"one", 1, "000001"},
		{"base", 62, "000010"},
		{"minute", 60, "00000y"},
		{"hour", 3600, "0000w4"},
		{"day", 86400, "000MTY"},
		{"negative clamps", -5, "000000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EncodeTimestamp(tt.seconds))
		})
	}
}

func TestRandom(t *testing.T) {
	valid := regexp.MustCompile(`^[0-9A-Za-z]+$`)
	for _, n := range []int{1, 18, 64} {
		s := Random(n)
		assert.Len(t, s, n)
		assert.Regexp(t, valid, s)
	}
}

func TestNewFormatAndOrder(t *testing.T) {
	pattern := regexp.MustCompile(`^msg_[0-9A-Za-z]{24}$`)
	id := New(PrefixContact)
	require.Regexp(t, pattern, id)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	generated := []string{
		NewAt(PrefixVisit, base.Add(2*time.Hour)),
		NewAt(PrefixVisit, base),
		NewAt(PrefixVisit, base.Add(time.Hour)),
	}
	sorted := append([]string(nil), generated...)
	sort.Strings(sorted)
	assert.Equal(t, []string{generated[1], generated[2], generated[0]}, sorted)
}

func TestNewUnique(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		id := New(PrefixContact)
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}
