package audio

import (
	"fmt"
	"unicode"

	"codeberg.org/snonux/slangify/internal/dialect"
)

// MaxSpeechRunes is the longest text accepted for synthesis.
const MaxSpeechRunes = dialect.MaxSpeechRunes

// ValidateSpeechText checks that text is speakable. Errors wrap
// dialect.ErrInvalidInput.
func ValidateSpeechText(text string) error {
	if err := dialect.CheckSpeechText(text); err != nil {
		return fmt.Errorf("%w: %w", dialect.ErrInvalidInput, err)
	}
	return nil
}

// HasMalayalam reports whether text contains Malayalam script.
func HasMalayalam(text string) bool {
	for _, r := range text {
		if unicode.In(r, unicode.Malayalam) {
			return true
		}
	}
	return false
}
