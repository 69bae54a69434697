package audio

import (
	"errors"
	"strings"
	"testing"

	"codeberg.org/snonux/slangify/internal/dialect"
)

func TestValidateSpeechText(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr bool
		errMsg  string
	}{
		{
			name: "malayalam sentence",
			text: "ഞാൻ നാട്ടിലേക്ക് പോകുന്നു",
		},
		{
			name: "manglish sentence",
			text: "Njan nattilekku pokunnu",
		},
		{
			name:    "empty text",
			text:    "",
			wantErr: true,
			errMsg:  "text cannot be empty",
		},
		{
			name:    "whitespace only",
			text:    "   ",
			wantErr: true,
			errMsg:  "text cannot be empty",
		},
		{
			name:    "punctuation only",
			text:    "?!...",
			wantErr: true,
			errMsg:  "text must contain letters",
		},
		{
			name:    "too long",
			text:    strings.Repeat("a", MaxSpeechRunes+1),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSpeechText(tt.text)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSpeechText() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.errMsg != "" && err != nil && !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("ValidateSpeechText() error = %v, want %v", err, tt.errMsg)
			}
			if err != nil && !errors.Is(err, dialect.ErrInvalidInput) {
				t.Errorf("ValidateSpeechText() error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestHasMalayalam(t *testing.T) {
	if !HasMalayalam("ente പേര്") {
		t.Error("expected Malayalam script to be detected")
	}
	if HasMalayalam("Ente peru Joseph") {
		t.Error("Manglish is not Malayalam script")
	}
}
