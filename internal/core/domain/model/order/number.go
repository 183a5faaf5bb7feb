package order

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
)

const numberSuffixLength = 9

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewNumber generates the human readable order number shown to customers and
// on kitchen tickets: "ORD-<unix millis>-<9 base36 characters>".
func NewNumber(now time.Time, rnd *rand.Rand) string {
	var b strings.Builder
	b.WriteString("ORD-")
	b.WriteString(strconv.FormatInt(now.UnixMilli(), 10))
	b.WriteByte('-')
	for range numberSuffixLength {
		var n int
		if rnd != nil {
			n = rnd.IntN(len(base36))
		} else {
			n = rand.IntN(len(base36)) //nolint:gosec // not a secret
		}
		b.WriteByte(base36[n])
	}
	return b.String()
}
