package reply

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"codeberg.org/snonux/slangify/internal/dialect"
)

type rawDialect struct {
	District          *string  `json:"district"`
	Slang             *string  `json:"slang"`
	MeaningMatchScore *float64 `json:"meaningMatchScore"`
}

type rawAnalysis struct {
	IsStandard *bool    `json:"isStandard"`
	Dialect    *string  `json:"dialect"`
	Confidence *float64 `json:"confidence"`
}

type rawReverse struct {
	StandardSentence *string `json:"standardSentence"`
}

type rawInsight struct {
	Insight        *string  `json:"insight"`
	PopularPhrases []string `json:"popularPhrases"`
}

type rawScore struct {
	MeaningMatchScore *float64 `json:"meaningMatchScore"`
}

func decode(content string, v any) error {
	doc, err := ExtractJSON(content)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader([]byte(doc)))
	if err := dec.Decode(v); err != nil {
		return mismatch("%v", err)
	}
	return nil
}

// score rounds a reported score to an integer and enforces 0..100.
func score(field string, v *float64) (int, error) {
	if v == nil {
		return 0, mismatch("missing field %q", field)
	}
	if math.IsNaN(*v) || *v < 0 || *v > 100 {
		return 0, mismatch("%s %v outside 0..100", field, *v)
	}
	return int(math.Round(*v)), nil
}

func text(field string, v *string) (string, error) {
	if v == nil {
		return "", mismatch("missing field %q", field)
	}
	s := strings.TrimSpace(*v)
	if s == "" {
		return "", mismatch("field %q is empty", field)
	}
	return s, nil
}

// Translations validates a dialect translation reply: exactly fourteen
// entries naming the districts in canonical order.
func Translations(content string) ([]dialect.DialectResult, error) {
	var raw []rawDialect
	if err := decode(content, &raw); err != nil {
		return nil, err
	}

	if len(raw) != dialect.DistrictCount {
		return nil, mismatch("expected %d districts, got %d", dialect.DistrictCount, len(raw))
	}

	canonical := dialect.Districts()
	out := make([]dialect.DialectResult, 0, len(raw))
	for i, r := range raw {
		name, err := text("district", r.District)
		if err != nil {
			return nil, err
		}
		d, err := dialect.ParseDistrict(name)
		if err != nil {
			return nil, mismatch("entry %d: %v", i+1, err)
		}
		if d != canonical[i] {
			return nil, mismatch("entry %d is %s, expected %s", i+1, d, canonical[i])
		}
		slang, err := text("slang", r.Slang)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", d, err)
		}
		sc, err := score("meaningMatchScore", r.MeaningMatchScore)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", d, err)
		}
		out = append(out, dialect.DialectResult{District: d, Slang: slang, MeaningMatchScore: sc})
	}
	return out, nil
}

// Analysis validates a dialect detection reply.
func Analysis(content string) (*dialect.AnalysisResult, error) {
	var raw rawAnalysis
	if err := decode(content, &raw); err != nil {
		return nil, err
	}

	if raw.IsStandard == nil {
		return nil, mismatch("missing field %q", "isStandard")
	}
	label, err := text("dialect", raw.Dialect)
	if err != nil {
		return nil, err
	}
	d, err := dialect.ParseDialectLabel(label)
	if err != nil {
		return nil, mismatch("%v", err)
	}
	if *raw.IsStandard != (d == dialect.Standard) {
		return nil, mismatch("isStandard %t contradicts dialect %q", *raw.IsStandard, d)
	}
	conf, err := score("confidence", raw.Confidence)
	if err != nil {
		return nil, err
	}

	return &dialect.AnalysisResult{IsStandard: *raw.IsStandard, Dialect: d, Confidence: conf}, nil
}

// Reverse validates a reverse translation reply.
func Reverse(content string) (*dialect.ReverseResult, error) {
	var raw rawReverse
	if err := decode(content, &raw); err != nil {
		return nil, err
	}

	s, err := text("standardSentence", raw.StandardSentence)
	if err != nil {
		return nil, err
	}
	return &dialect.ReverseResult{StandardSentence: s}, nil
}

// Insight validates a cultural insight reply carrying three or four phrases.
func Insight(content string) (*dialect.InsightResult, error) {
	var raw rawInsight
	if err := decode(content, &raw); err != nil {
		return nil, err
	}

	insight, err := text("insight", raw.Insight)
	if err != nil {
		return nil, err
	}
	if raw.PopularPhrases == nil {
		return nil, mismatch("missing field %q", "popularPhrases")
	}

	if n := len(raw.PopularPhrases); n < 3 || n > 4 {
		return nil, mismatch("expected 3-4 popular phrases, got %d", n)
	}
	phrases := make([]string, 0, len(raw.PopularPhrases))
	for i, p := range raw.PopularPhrases {
		p = strings.TrimSpace(p)
		if p == "" {
			return nil, mismatch("popular phrase %d is empty", i+1)
		}
		phrases = append(phrases, p)
	}

	return &dialect.InsightResult{Insight: insight, PopularPhrases: phrases}, nil
}

// Score parses a meaning match score. The model is asked for a bare number
// but a {"meaningMatchScore": n} object is accepted too.
func Score(content string) (*dialect.ScoreResult, error) {
	s := strings.TrimSpace(content)
	if s == "" {
		return nil, dialect.ErrEmptyResponse
	}

	if strings.ContainsAny(s, "{[") {
		var raw rawScore
		if err := decode(s, &raw); err != nil {
			return nil, err
		}
		sc, err := score("meaningMatchScore", raw.MeaningMatchScore)
		if err != nil {
			return nil, err
		}
		return &dialect.ScoreResult{MeaningMatchScore: sc}, nil
	}

	s = strings.TrimSuffix(strings.TrimPrefix(s, "MeaningMatchScore:"), "%")
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil, mismatch("score is not a number: %s", abbreviate(s, 50))
	}
	sc, err := score("meaningMatchScore", &v)
	if err != nil {
		return nil, err
	}
	return &dialect.ScoreResult{MeaningMatchScore: sc}, nil
}
