package batch

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"codeberg.org/snonux/slangify/internal/dialect"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []Entry
	}{
		{
			name:    "empty file",
			content: "",
			want:    nil,
		},
		{
			name:    "only whitespace",
			content: "   \n\t\r\n   ",
			want:    nil,
		},
		{
			name: "plain sentences",
			content: `Njan pokunnu
Ente peru Joseph`,
			want: []Entry{
				{Line: 1, Sentence: "Njan pokunnu", Intensity: dialect.IntensityMedium},
				{Line: 2, Sentence: "Ente peru Joseph", Intensity: dialect.IntensityMedium},
			},
		},
		{
			name: "comments and blank lines",
			content: `# greetings

  Sughamano?  
# end`,
			want: []Entry{
				{Line: 3, Sentence: "Sughamano?", Intensity: dialect.IntensityMedium},
			},
		},
		{
			name: "intensity prefixes",
			content: `low: Njan varam
HIGH:Enthu patti?
Medium : Chaya kudikkam`,
			want: []Entry{
				{Line: 1, Sentence: "Njan varam", Intensity: dialect.IntensityLow},
				{Line: 2, Sentence: "Enthu patti?", Intensity: dialect.IntensityHigh},
				{Line: 3, Sentence: "Chaya kudikkam", Intensity: dialect.IntensityMedium},
			},
		},
		{
			name:    "colon inside sentence",
			content: "Time: ippo ethra mani?",
			want: []Entry{
				{Line: 1, Sentence: "Time: ippo ethra mani?", Intensity: dialect.IntensityMedium},
			},
		},
		{
			name:    "prefix without sentence",
			content: "high:\nlow:   ",
			want:    nil,
		},
		{
			name:    "windows line endings",
			content: "Njan pokunnu\r\nlow: Vaa\r\n",
			want: []Entry{
				{Line: 1, Sentence: "Njan pokunnu", Intensity: dialect.IntensityMedium},
				{Line: 2, Sentence: "Vaa", Intensity: dialect.IntensityLow},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(strings.NewReader(tt.content), dialect.IntensityMedium)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestReadBatchFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sentences.txt")
	if err := os.WriteFile(path, []byte("high: Enthokke und?\nNjan pokunnu\n"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := ReadBatchFile(path, dialect.IntensityLow)
	if err != nil {
		t.Fatalf("ReadBatchFile() error = %v", err)
	}
	want := []Entry{
		{Line: 1, Sentence: "Enthokke und?", Intensity: dialect.IntensityHigh},
		{Line: 2, Sentence: "Njan pokunnu", Intensity: dialect.IntensityLow},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ReadBatchFile() = %+v, want %+v", got, want)
	}
}

func TestReadBatchFile_Missing(t *testing.T) {
	_, err := ReadBatchFile(filepath.Join(t.TempDir(), "missing.txt"), dialect.IntensityMedium)
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
	if !strings.Contains(err.Error(), "failed to read batch file") {
		t.Errorf("Unexpected error: %v", err)
	}
}
