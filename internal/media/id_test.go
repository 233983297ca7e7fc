package media

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIDFormat(t *testing.T) {
	id := NewID()

	parts := strings.SplitN(id, "-", 2)
	require.Len(t, parts, 2, "identifier must be <time part>-<random part>")

	assert.NotEmpty(t, parts[0])
	for _, c := range parts[0] {
		assert.Contains(t, "ABCDEFGHIJKLMNOPQRSTUVWXYZ234567", string(c),
			"time part must be RFC 4648 base32 without padding")
	}

	require.Len(t, parts[1], 7)
	for _, c := range parts[1] {
		assert.Contains(t, alphanumeric, string(c))
	}
}

func TestTimePartOrdering(t *testing.T) {
	base := time.Now().Unix() - epoch

	// Later timestamps of the same encoded width sort after earlier ones.
	prev := timePart(base)
	for _, delta := range []int64{1, 60, 3600, 86400} {
		cur := timePart(base + delta)
		assert.LessOrEqual(t, prev, cur)
		prev = cur
	}
}

func TestNewIDUniqueness(t *testing.T) {
	const n = 100_000

	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		id := NewID()
		_, dup := seen[id]
		require.False(t, dup, "duplicate identifier %q after %d draws", id, i)
		seen[id] = struct{}{}
	}
}
