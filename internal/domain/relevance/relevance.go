package relevance

import "math"

// Scoring constants.
const (
	// Base is the score every posting starts from.
	Base = 50
	// ImportanceWeight scales the author-supplied entry importance.
	ImportanceWeight = 0.3
	// FrequencyStep is the bonus per prior occurrence of the term corpus-wide.
	FrequencyStep = 5
	// FrequencyCap bounds the total frequency bonus.
	FrequencyCap = 30
	// Max is the score ceiling.
	Max = 100
)

// Score computes a term's relevance for an entry: base 50 plus the weighted
// entry importance plus min(30, 5*termTotal), clamped to 100 and rounded to
// the nearest integer. termTotal is the summed frequency of the term across
// every existing posting, evaluated before the new posting is inserted.
func Score(importance, termTotal int) int {
	bonus := FrequencyStep * termTotal
	if bonus > FrequencyCap {
		bonus = FrequencyCap
	}
	raw := Base + ImportanceWeight*float64(importance) + float64(bonus)
	if raw > Max {
		raw = Max
	}
	return int(math.Round(raw))
}
