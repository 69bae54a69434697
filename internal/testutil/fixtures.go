package testutil

import (
	"encoding/json"
	"fmt"

	"codeberg.org/snonux/slangify/internal/dialect"
)

// TestSentence is the sentence used across scenario tests.
const TestSentence = "Ente peru Joseph. Njan evideya pokunnu?"

// TranslationReply returns a valid fourteen-district model reply.
func TranslationReply() string {
	return TranslationReplyWith(nil)
}

// TranslationReplyWith returns a translation reply; mutate may alter or
// delete fields of individual entries.
func TranslationReplyWith(mutate func(i int, entry map[string]any)) string {
	entries := make([]map[string]any, 0, dialect.DistrictCount)
	for i, d := range dialect.DistrictNames() {
		entry := map[string]any{
			"district":          d,
			"slang":             fmt.Sprintf("എന്റെ പേര് ജോസഫ്. ഞാൻ എവിടെ പോണേ? (%d)", i+1),
			"meaningMatchScore": 95 + i%5,
		}
		if mutate != nil {
			mutate(i, entry)
		}
		entries = append(entries, entry)
	}
	data, err := json.Marshal(entries)
	if err != nil {
		panic(err)
	}
	return string(data)
}

// GenerateAudioData returns a minimal WAV clip.
func GenerateAudioData() []byte {
	return []byte{
		'R', 'I', 'F', 'F', 40, 0, 0, 0, 'W', 'A', 'V', 'E',
		'f', 'm', 't', ' ', 16, 0, 0, 0, 1, 0, 1, 0,
		0xC0, 0x5D, 0, 0, 0x80, 0xBB, 0, 0, 2, 0, 16, 0,
		'd', 'a', 't', 'a', 4, 0, 0, 0, 0, 0, 0, 0,
	}
}
