package quizgen

// Config controls prompt limits and sampling for the two LLM calls.
type Config struct {
	// MaxSourceChars is the character budget for source text embedded in a
	// prompt. Longer text is cut to this prefix.
	MaxSourceChars int

	// GenerationTemperature favors moderate variety in questions.
	GenerationTemperature float64
	GenerationMaxTokens   int

	// ExplanationTemperature favors faithfulness to the source.
	ExplanationTemperature float64
	ExplanationMaxTokens   int
}

// DefaultConfig returns the recommended defaults.
func DefaultConfig() Config {
	return Config{
		MaxSourceChars:         100_000,
		GenerationTemperature:  0.6,
		GenerationMaxTokens:    8192,
		ExplanationTemperature: 0.3,
		ExplanationMaxTokens:   2048,
	}
}
