package chunk

import "strings"

// ORPIndex computes the optimal recognition point for a chunk text: the
// character offset that should be visually emphasized for fastest word
// recognition. Short words anchor near the front; longer words at roughly
// 35% of their length. The result never lands on a space.
func ORPIndex(text string) int {
	runes := []rune(strings.TrimSpace(text))
	length := len(runes)
	switch {
	case length <= 1:
		return 0
	case length <= 3:
		return 1
	}
	idx := int(float64(length) * 0.35)
	for idx > 0 && runes[idx] == ' ' {
		idx--
	}
	return idx
}
