package dialect

import (
	"encoding/base64"
	"fmt"
)

// TranslationRequest asks for the sentence in all fourteen dialects.
type TranslationRequest struct {
	Sentence  string    `json:"sentence"`
	Intensity Intensity `json:"slangIntensity"`
}

// DialectResult is one district's rendering of a translated sentence.
type DialectResult struct {
	District          District `json:"district"`
	Slang             string   `json:"slang"`
	MeaningMatchScore int      `json:"meaningMatchScore"`
}

// AnalysisRequest asks which dialect a sentence is written in.
type AnalysisRequest struct {
	Sentence string `json:"sentence"`
}

// AnalysisResult is the detected dialect of a sentence.
type AnalysisResult struct {
	IsStandard bool     `json:"isStandard"`
	Dialect    District `json:"dialect"`
	Confidence int      `json:"confidence"`
}

// ReverseRequest asks for a slang sentence in standard Malayalam.
type ReverseRequest struct {
	SlangSentence string   `json:"slangSentence"`
	District      District `json:"district"`
}

// ReverseResult holds the normalized sentence.
type ReverseResult struct {
	StandardSentence string `json:"standardSentence"`
}

// InsightRequest asks for cultural trivia about a district's dialect.
type InsightRequest struct {
	District District `json:"district"`
}

// InsightResult is a short insight plus three or four popular phrases.
type InsightResult struct {
	Insight        string   `json:"insight"`
	PopularPhrases []string `json:"popularPhrases"`
}

// ScoreRequest asks the model to rate how well a conversion kept its meaning.
type ScoreRequest struct {
	OriginalSentence  string   `json:"originalSentence"`
	ConvertedSentence string   `json:"convertedSentence"`
	District          District `json:"district"`
}

// ScoreResult is a meaning match score between 0 and 100.
type ScoreResult struct {
	MeaningMatchScore int `json:"meaningMatchScore"`
}

// SpeechRequest asks for spoken audio of a text. District optionally
// selects the accent.
type SpeechRequest struct {
	Text     string   `json:"text"`
	District District `json:"district,omitempty"`
}

// SpeechResult is an encoded audio clip.
type SpeechResult struct {
	Audio    []byte `json:"-"`
	MIMEType string `json:"mimeType"`
}

// DataURI renders the clip as a data URI suitable for an HTML audio element.
func (s *SpeechResult) DataURI() string {
	return fmt.Sprintf("data:%s;base64,%s", s.MIMEType, base64.StdEncoding.EncodeToString(s.Audio))
}

// Extension returns the file extension matching the clip's MIME type.
func (s *SpeechResult) Extension() string {
	switch s.MIMEType {
	case "audio/wav", "audio/x-wav", "audio/wave":
		return ".wav"
	case "audio/ogg", "audio/opus":
		return ".opus"
	case "audio/aac":
		return ".aac"
	case "audio/flac":
		return ".flac"
	default:
		return ".mp3"
	}
}
