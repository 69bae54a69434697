package dialect

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxSpeechRunes is the longest text accepted for synthesis.
const MaxSpeechRunes = 4096

// CheckSpeechText reports why text cannot be spoken: it must be non-empty,
// contain at least one letter and be at most MaxSpeechRunes long.
func CheckSpeechText(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return errors.New("text cannot be empty")
	}
	if n := utf8.RuneCountInString(text); n > MaxSpeechRunes {
		return fmt.Errorf("text is too long: %d characters, maximum is %d", n, MaxSpeechRunes)
	}
	for _, r := range text {
		if unicode.IsLetter(r) {
			return nil
		}
	}
	return errors.New("text must contain letters")
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func required(field, value string) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", invalid("%s is required", field)
	}
	return v, nil
}

func canonicalDistrict(field string, d District) (District, error) {
	if strings.TrimSpace(string(d)) == "" {
		return "", invalid("%s is required", field)
	}
	c, err := ParseDistrict(string(d))
	if err != nil {
		return "", invalid("%s: %v", field, err)
	}
	return c, nil
}

// Normalize trims the sentence and canonicalizes the intensity. Errors wrap
// ErrInvalidInput.
func (r *TranslationRequest) Normalize() error {
	s, err := required("sentence", r.Sentence)
	if err != nil {
		return err
	}
	in, err := ParseIntensity(string(r.Intensity))
	if err != nil {
		return invalid("%v", err)
	}
	r.Sentence, r.Intensity = s, in
	return nil
}

// Normalize trims the sentence.
func (r *AnalysisRequest) Normalize() error {
	s, err := required("sentence", r.Sentence)
	if err != nil {
		return err
	}
	r.Sentence = s
	return nil
}

// Normalize trims the slang sentence and canonicalizes the district.
func (r *ReverseRequest) Normalize() error {
	s, err := required("slangSentence", r.SlangSentence)
	if err != nil {
		return err
	}
	d, err := canonicalDistrict("district", r.District)
	if err != nil {
		return err
	}
	r.SlangSentence, r.District = s, d
	return nil
}

// Normalize canonicalizes the district.
func (r *InsightRequest) Normalize() error {
	d, err := canonicalDistrict("district", r.District)
	if err != nil {
		return err
	}
	r.District = d
	return nil
}

// Normalize trims both sentences and canonicalizes the district.
func (r *ScoreRequest) Normalize() error {
	orig, err := required("originalSentence", r.OriginalSentence)
	if err != nil {
		return err
	}
	conv, err := required("convertedSentence", r.ConvertedSentence)
	if err != nil {
		return err
	}
	d, err := canonicalDistrict("district", r.District)
	if err != nil {
		return err
	}
	r.OriginalSentence, r.ConvertedSentence, r.District = orig, conv, d
	return nil
}

// Normalize trims the text; an optional district is canonicalized.
func (r *SpeechRequest) Normalize() error {
	s, err := required("text", r.Text)
	if err != nil {
		return err
	}
	if err := CheckSpeechText(s); err != nil {
		return invalid("%v", err)
	}
	if r.District != "" {
		d, err := canonicalDistrict("district", r.District)
		if err != nil {
			return err
		}
		r.District = d
	}
	r.Text = s
	return nil
}
