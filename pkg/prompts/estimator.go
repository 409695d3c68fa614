package prompts

import (
	"math"
)

// DefaultCharsPerToken approximates the average number of characters an
// English/code tokenizer packs into a single token.
const DefaultCharsPerToken = 4.0

// Estimator maps resolved text to an approximate token cost.
type Estimator func(text string) int

// CharEstimator returns ceil(len(text) / charsPerToken), with the length
// taken in bytes. A non-positive divisor uses DefaultCharsPerToken.
func CharEstimator(charsPerToken float64) Estimator {
	if charsPerToken <= 0 || math.IsNaN(charsPerToken) || math.IsInf(charsPerToken, 0) {
		charsPerToken = DefaultCharsPerToken
	}
	return func(text string) int {
		return int(math.Ceil(float64(len(text)) / charsPerToken))
	}
}

func DefaultEstimator() Estimator {
	return CharEstimator(DefaultCharsPerToken)
}
