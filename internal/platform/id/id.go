package id

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"strings"

	"ghostnote/internal/platform/clock"

	"github.com/google/uuid"
)

const (
	slugPrefix     = "cos"
	suffixLen      = 8
	base36Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// Generator creates opaque identifiers.
type Generator interface {
	New() string
}

// UUID issues random v4 identifiers for strategy sessions.
type UUID struct{}

func (UUID) New() string {
	return uuid.NewString()
}

// ArchiveSlug builds public archive slugs of the form
// cos_<base36 epoch ms>_<random base36 suffix>. Uniqueness relies on the
// timestamp plus suffix and is only meant for human-rate publishing.
type ArchiveSlug struct {
	Clock clock.Clock
}

func (g ArchiveSlug) New() string {
	clk := g.Clock
	if clk == nil {
		clk = clock.SystemClock{}
	}
	ts := strconv.FormatInt(clock.Millis(clk), 36)
	return slugPrefix + "_" + ts + "_" + randomBase36(suffixLen)
}

func randomBase36(n int) string {
	var sb strings.Builder
	max := big.NewInt(int64(len(base36Alphabet)))
	for i := 0; i < n; i++ {
		v, err := rand.Int(rand.Reader, max)
		if err != nil {
			sb.WriteByte(base36Alphabet[i%len(base36Alphabet)])
			continue
		}
		sb.WriteByte(base36Alphabet[v.Int64()])
	}
	return sb.String()
}
