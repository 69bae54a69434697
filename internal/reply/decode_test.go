package reply

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"codeberg.org/snonux/slangify/internal/dialect"
)

// fourteen builds a translation reply; mutate may alter individual entries.
func fourteen(mutate func(i int, m map[string]any)) string {
	entries := make([]map[string]any, 0, dialect.DistrictCount)
	for i, d := range dialect.DistrictNames() {
		m := map[string]any{
			"district":          d,
			"slang":             fmt.Sprintf("എൻ്റെ പേര് ജോസഫ് %d", i),
			"meaningMatchScore": 95 + i%5,
		}
		if mutate != nil {
			mutate(i, m)
		}
		entries = append(entries, m)
	}
	data, _ := json.Marshal(entries)
	return string(data)
}

func TestTranslationsValid(t *testing.T) {
	got, err := Translations("```json\n" + fourteen(nil) + "\n```")
	if err != nil {
		t.Fatalf("Translations() error = %v", err)
	}

	if len(got) != dialect.DistrictCount {
		t.Fatalf("got %d results", len(got))
	}

	seen := make(map[dialect.District]bool)
	for i, r := range got {
		if r.District != dialect.Districts()[i] {
			t.Errorf("result %d is %s", i, r.District)
		}
		if seen[r.District] {
			t.Errorf("duplicate %s", r.District)
		}
		seen[r.District] = true
		if r.MeaningMatchScore < 0 || r.MeaningMatchScore > 100 {
			t.Errorf("score %d out of range", r.MeaningMatchScore)
		}
	}

	if got[0].District != dialect.Thiruvananthapuram || got[0].Slang == "" {
		t.Errorf("unexpected first entry %+v", got[0])
	}
}

func TestTranslationsNormalizesNamesAndRoundsScores(t *testing.T) {
	content := fourteen(func(i int, m map[string]any) {
		if i == 3 {
			m["district"] = " alappuzha "
			m["meaningMatchScore"] = 96.6
		}
	})

	got, err := Translations(content)
	if err != nil {
		t.Fatalf("Translations() error = %v", err)
	}
	if got[3].District != dialect.Alappuzha {
		t.Errorf("district = %q", got[3].District)
	}
	if got[3].MeaningMatchScore != 97 {
		t.Errorf("score = %d, want 97", got[3].MeaningMatchScore)
	}
}

func TestTranslationsMismatch(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"thirteen entries", func() string {
			var entries []map[string]any
			_ = json.Unmarshal([]byte(fourteen(nil)), &entries)
			data, _ := json.Marshal(entries[:13])
			return string(data)
		}()},
		{"missing score", fourteen(func(i int, m map[string]any) {
			if i == 5 {
				delete(m, "meaningMatchScore")
			}
		})},
		{"missing slang", fourteen(func(i int, m map[string]any) {
			if i == 0 {
				delete(m, "slang")
			}
		})},
		{"score above 100", fourteen(func(i int, m map[string]any) {
			if i == 2 {
				m["meaningMatchScore"] = 101
			}
		})},
		{"negative score", fourteen(func(i int, m map[string]any) {
			if i == 2 {
				m["meaningMatchScore"] = -1
			}
		})},
		{"score as string", fourteen(func(i int, m map[string]any) {
			if i == 2 {
				m["meaningMatchScore"] = "98"
			}
		})},
		{"swapped order", fourteen(func(i int, m map[string]any) {
			switch i {
			case 0:
				m["district"] = "Kollam"
			case 1:
				m["district"] = "Thiruvananthapuram"
			}
		})},
		{"duplicate district", fourteen(func(i int, m map[string]any) {
			if i == 13 {
				m["district"] = "Kannur"
			}
		})},
		{"unknown district", fourteen(func(i int, m map[string]any) {
			if i == 7 {
				m["district"] = "Mumbai"
			}
		})},
		{"object instead of array", `{"district":"Kollam"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Translations(tt.content)
			if !errors.Is(err, dialect.ErrSchemaMismatch) {
				t.Fatalf("Translations() error = %v, want ErrSchemaMismatch", err)
			}
			if got != nil {
				t.Error("partial result returned alongside error")
			}
		})
	}
}

func TestTranslationsEmpty(t *testing.T) {
	if _, err := Translations(""); !errors.Is(err, dialect.ErrEmptyResponse) {
		t.Errorf("Translations(\"\") error = %v, want ErrEmptyResponse", err)
	}
}

func TestAnalysis(t *testing.T) {
	got, err := Analysis(`{"isStandard": false, "dialect": "Thiruvananthapuram", "confidence": 95}`)
	if err != nil {
		t.Fatalf("Analysis() error = %v", err)
	}
	if got.IsStandard || got.Dialect != dialect.Thiruvananthapuram || got.Confidence != 95 {
		t.Errorf("Analysis() = %+v", got)
	}

	got, err = Analysis(`{"isStandard": true, "dialect": "Standard", "confidence": 99}`)
	if err != nil || got.Dialect != dialect.Standard {
		t.Errorf("Analysis(standard) = %+v, %v", got, err)
	}

	bad := []string{
		`{"dialect": "Kollam", "confidence": 90}`,
		`{"isStandard": false, "dialect": "Bengaluru", "confidence": 90}`,
		`{"isStandard": false, "dialect": "Kollam"}`,
		`{"isStandard": false, "dialect": "Kollam", "confidence": 250}`,
		`{"isStandard": true, "dialect": "Kollam", "confidence": 90}`,
		`{"isStandard": false, "dialect": "Standard", "confidence": 90}`,
	}
	for _, content := range bad {
		if _, err := Analysis(content); !errors.Is(err, dialect.ErrSchemaMismatch) {
			t.Errorf("Analysis(%s) error = %v, want ErrSchemaMismatch", content, err)
		}
	}
}

func TestReverse(t *testing.T) {
	got, err := Reverse(`{"standardSentence": "ഞാൻ അവിടെ പോകുന്നു."}`)
	if err != nil || got.StandardSentence != "ഞാൻ അവിടെ പോകുന്നു." {
		t.Errorf("Reverse() = %+v, %v", got, err)
	}

	if _, err := Reverse(`{"sentence": "x"}`); !errors.Is(err, dialect.ErrSchemaMismatch) {
		t.Errorf("Reverse() missing field error = %v", err)
	}
}

func TestInsight(t *testing.T) {
	valid := `{"insight": "Thrissur speech is rhythmic.", "popularPhrases": ["a (x)", "b (y)", "c (z)"]}`
	got, err := Insight(valid)
	if err != nil {
		t.Fatalf("Insight() error = %v", err)
	}
	if len(got.PopularPhrases) != 3 || !strings.HasPrefix(got.Insight, "Thrissur") {
		t.Errorf("Insight() = %+v", got)
	}

	bad := []string{
		`{"insight": "x", "popularPhrases": ["a", "b"]}`,
		`{"insight": "x", "popularPhrases": ["a", "b", "c", "d", "e"]}`,
		`{"insight": "x"}`,
		`{"popularPhrases": ["a", "b", "c"]}`,
		`{"insight": "x", "popularPhrases": ["a", " ", "c"]}`,
		`{"insight": "x", "popularPhrases": ["a", "b", "", "c", "d"]}`,
		`{"insight": "x", "popularPhrases": ["a", "b", "c", ""]}`,
	}
	for _, content := range bad {
		if _, err := Insight(content); !errors.Is(err, dialect.ErrSchemaMismatch) {
			t.Errorf("Insight(%s) error = %v, want ErrSchemaMismatch", content, err)
		}
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		content string
		want    int
		wantErr error
	}{
		{"97", 97, nil},
		{" 88.4\n", 88, nil},
		{"MeaningMatchScore: 91", 91, nil},
		{"93%", 93, nil},
		{`{"meaningMatchScore": 80}`, 80, nil},
		{"", 0, dialect.ErrEmptyResponse},
		{"very close", 0, dialect.ErrSchemaMismatch},
		{"140", 0, dialect.ErrSchemaMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.content, func(t *testing.T) {
			got, err := Score(tt.content)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Score() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Score() error = %v", err)
			}
			if got.MeaningMatchScore != tt.want {
				t.Errorf("Score() = %d, want %d", got.MeaningMatchScore, tt.want)
			}
		})
	}
}
