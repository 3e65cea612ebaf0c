package textutil

// LCSLength returns the length of the longest common subsequence of a and b,
// measured in runes.
func LCSLength(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}
	if len(rb) > len(ra) {
		ra, rb = rb, ra
	}
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			switch {
			case ra[i-1] == rb[j-1]:
				curr[j] = prev[j-1] + 1
			case prev[j] >= curr[j-1]:
				curr[j] = prev[j]
			default:
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

// SimilarityRatio computes 2*LCS/(len(a)+len(b)) over runes.
// Returns 0 if either string is empty and 1 for identical non-empty strings.
func SimilarityRatio(a, b string) float64 {
	la := len([]rune(a))
	lb := len([]rune(b))
	if la == 0 || lb == 0 {
		return 0
	}
	if a == b {
		return 1
	}
	return 2 * float64(LCSLength(a, b)) / float64(la+lb)
}
