package utils

// Token estimation helpers for sizing prompts before the model call.

// CountTokens estimates the number of tokens in text, approximating one
// token per four characters. Any non-empty text counts as at least one.
func CountTokens(text string) int {
	if len(text) == 0 {
		return 0
	}
	tokens := len([]rune(text)) / 4
	if tokens == 0 {
		return 1
	}
	return tokens
}
