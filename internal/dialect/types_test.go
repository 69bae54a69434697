package dialect

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestSpeechResultDataURI(t *testing.T) {
	clip := &SpeechResult{Audio: []byte("RIFF"), MIMEType: "audio/wav"}

	if got := clip.DataURI(); got != "data:audio/wav;base64,UklGRg==" {
		t.Errorf("DataURI() = %q", got)
	}
	if clip.Extension() != ".wav" {
		t.Errorf("Extension() = %q, want .wav", clip.Extension())
	}

	mp3 := &SpeechResult{MIMEType: "audio/mpeg"}
	if mp3.Extension() != ".mp3" {
		t.Errorf("Extension() = %q, want .mp3", mp3.Extension())
	}
}

func TestDialectResultWireNames(t *testing.T) {
	data, err := json.Marshal(DialectResult{District: Kollam, Slang: "x", MeaningMatchScore: 97})
	if err != nil {
		t.Fatal(err)
	}

	for _, key := range []string{`"district"`, `"slang"`, `"meaningMatchScore"`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("marshalled result %s lacks %s", data, key)
		}
	}
}
