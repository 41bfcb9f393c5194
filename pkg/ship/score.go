package ship

import (
	"crypto/sha256"
	"math/big"
	"sort"
	"strings"
)

// HeartThreshold is the lowest percentage that still gets a whole heart
const HeartThreshold = 50

var modulus = big.NewInt(101)

// Result is the outcome of shipping two users
type Result struct {
	Percentage int
	Label      string
}

// Score hashes both names into a stable percentage in [0,100].
// Names are lowercased and sorted first so the pair order does not matter.
func Score(nameA, nameB string) Result {
	names := []string{strings.ToLower(nameA), strings.ToLower(nameB)}
	sort.Strings(names)

	sum := sha256.Sum256([]byte(strings.Join(names, "_")))
	n := new(big.Int).SetBytes(sum[:])
	percentage := int(n.Mod(n, modulus).Int64())

	return Result{
		Percentage: percentage,
		Label:      Label(percentage),
	}
}

// Label maps a percentage to its result text. The checks run top to bottom,
// so 69 only gets its own label because it is below 80.
func Label(percentage int) string {
	switch {
	case percentage == 100:
		return "Soulmates! ❤️"
	case percentage >= 80:
		return "Perfect Match! 💕"
	case percentage == 69:
		return "( ¬ᴗ¬)"
	case percentage >= 60:
		return "Great Chemistry! 😊"
	case percentage >= 40:
		return "Good Friends! 🤝"
	case percentage >= 20:
		return "Just Acquaintances. 🤔"
	case percentage > 0:
		return "Not Really Compatible. 😕"
	default:
		return "Arch Nemesis! ⚔️"
	}
}

// WholeHeart reports whether the composed image should show an intact heart
func (r Result) WholeHeart() bool {
	return r.Percentage >= HeartThreshold
}
