package cli

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"codeberg.org/snonux/slangify/internal/dialect"
)

// recordingRunner remembers the last call it received.
type recordingRunner struct {
	call      string
	text      string
	second    string
	intensity dialect.Intensity
	district  dialect.District
	output    string
}

func (r *recordingRunner) RunGUI() error { r.call = "gui"; return nil }

func (r *recordingRunner) ListModels(context.Context) error { r.call = "list-models"; return nil }

func (r *recordingRunner) Translate(_ context.Context, s string, i dialect.Intensity) error {
	r.call, r.text, r.intensity = "translate", s, i
	return nil
}

func (r *recordingRunner) TranslateBatch(_ context.Context, f string, i dialect.Intensity) error {
	r.call, r.text, r.intensity = "batch", f, i
	return nil
}

func (r *recordingRunner) Analyze(_ context.Context, s string) error {
	r.call, r.text = "analyze", s
	return nil
}

func (r *recordingRunner) Reverse(_ context.Context, s string, d dialect.District) error {
	r.call, r.text, r.district = "reverse", s, d
	return nil
}

func (r *recordingRunner) Insights(_ context.Context, d dialect.District) error {
	r.call, r.district = "insights", d
	return nil
}

func (r *recordingRunner) Speak(_ context.Context, s string, d dialect.District, out string) error {
	r.call, r.text, r.district, r.output = "speak", s, d, out
	return nil
}

func (r *recordingRunner) Score(_ context.Context, a, b string, d dialect.District) error {
	r.call, r.text, r.second, r.district = "score", a, b, d
	return nil
}

func (r *recordingRunner) Serve(_ context.Context, addr string) error {
	r.call, r.text = "serve", addr
	return nil
}

func execute(t *testing.T, args ...string) (*recordingRunner, error) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	SetDefaults()

	r := &recordingRunner{}
	cmd := CreateRootCommand(NewFlags(), func() (Runner, error) { return r, nil })
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return r, err
}

func TestCreateRootCommand(t *testing.T) {
	cmd := CreateRootCommand(NewFlags(), nil)

	if cmd.Use != "slangify" {
		t.Errorf("Expected Use to be 'slangify', got %s", cmd.Use)
	}
	if !strings.Contains(cmd.Short, "Kerala dialect") {
		t.Errorf("Expected Short description to mention Kerala dialects, got %q", cmd.Short)
	}

	for _, name := range []string{"config", "provider", "model", "log-level", "log-format"} {
		if cmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("Expected persistent flag %s to exist", name)
		}
	}
	if cmd.Flags().Lookup("list-models") == nil {
		t.Error("Expected flag list-models to exist")
	}

	want := map[string]bool{"translate": true, "analyze": true, "reverse": true, "insights": true, "speak": true, "score": true, "serve": true}
	for _, sub := range cmd.Commands() {
		delete(want, sub.Name())
	}
	if len(want) != 0 {
		t.Errorf("Missing subcommands: %v", want)
	}
}

func TestSubcommandFlags(t *testing.T) {
	cmd := CreateRootCommand(NewFlags(), nil)

	flagTests := []struct {
		command   string
		name      string
		shorthand string
		defValue  string
	}{
		{"translate", "intensity", "i", "medium"},
		{"translate", "batch", "b", ""},
		{"reverse", "district", "d", ""},
		{"speak", "output", "o", ""},
		{"speak", "district", "d", ""},
		{"score", "district", "d", ""},
		{"serve", "addr", "", ":9002"},
	}

	for _, tt := range flagTests {
		t.Run(tt.command+"_"+tt.name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{tt.command})
			if err != nil {
				t.Fatalf("Subcommand %s not found: %v", tt.command, err)
			}
			var flag *pflag.Flag
			flag = sub.Flags().Lookup(tt.name)
			if flag == nil {
				t.Fatalf("Expected flag %s on %s", tt.name, tt.command)
			}
			if flag.Shorthand != tt.shorthand {
				t.Errorf("Expected shorthand %q, got %q", tt.shorthand, flag.Shorthand)
			}
			if flag.DefValue != tt.defValue {
				t.Errorf("Expected default %q, got %q", tt.defValue, flag.DefValue)
			}
		})
	}
}

func TestCommands(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		call      string
		text      string
		second    string
		intensity dialect.Intensity
		district  dialect.District
		output    string
	}{
		{name: "no args launches gui", args: nil, call: "gui"},
		{name: "list models", args: []string{"--list-models"}, call: "list-models"},
		{
			name: "translate joins words", args: []string{"translate", "Njan", "pokunnu"},
			call: "translate", text: "Njan pokunnu", intensity: dialect.IntensityMedium,
		},
		{
			name: "translate intensity", args: []string{"translate", "-i", "HIGH", "Njan pokunnu"},
			call: "translate", text: "Njan pokunnu", intensity: dialect.IntensityHigh,
		},
		{
			name: "translate batch", args: []string{"translate", "--batch", "lines.txt", "--intensity", "low"},
			call: "batch", text: "lines.txt", intensity: dialect.IntensityLow,
		},
		{name: "analyze", args: []string{"analyze", "Enthoottaa", "gadi"}, call: "analyze", text: "Enthoottaa gadi"},
		{
			name: "reverse", args: []string{"reverse", "-d", "thrissur", "enthoottaa"},
			call: "reverse", text: "enthoottaa", district: dialect.Thrissur,
		},
		{name: "insights", args: []string{"insights", "Kannur"}, call: "insights", district: dialect.Kannur},
		{
			name: "speak", args: []string{"speak", "-o", "out.wav", "-d", "Kollam", "ente", "peru"},
			call: "speak", text: "ente peru", district: dialect.Kollam, output: "out.wav",
		},
		{
			name: "score", args: []string{"score", "--district", "Idukki", "original", "converted"},
			call: "score", text: "original", second: "converted", district: dialect.Idukki,
		},
		{name: "serve default address", args: []string{"serve"}, call: "serve", text: ":9002"},
		{name: "serve address", args: []string{"serve", "--addr", ":8080"}, call: "serve", text: ":8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := execute(t, tt.args...)
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			got := recordingRunner{call: r.call, text: r.text, second: r.second, intensity: r.intensity, district: r.district, output: r.output}
			want := recordingRunner{call: tt.call, text: tt.text, second: tt.second, intensity: tt.intensity, district: tt.district, output: tt.output}
			if got != want {
				t.Errorf("runner got %+v, want %+v", got, want)
			}
		})
	}
}

func TestCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"translate without input", []string{"translate"}},
		{"translate sentence and batch", []string{"translate", "-b", "f.txt", "Njan"}},
		{"translate bad intensity", []string{"translate", "-i", "extreme", "Njan"}},
		{"reverse without district", []string{"reverse", "enthoottaa"}},
		{"reverse unknown district", []string{"reverse", "-d", "Chennai", "enthoottaa"}},
		{"insights unknown district", []string{"insights", "Standard"}},
		{"score missing argument", []string{"score", "-d", "Kollam", "only-one"}},
		{"analyze without sentence", []string{"analyze"}},
		{"root with argument", []string{"Njan pokunnu"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := execute(t, tt.args...)
			if err == nil {
				t.Fatalf("Expected error for %v", tt.args)
			}
			if r.call != "" {
				t.Errorf("Expected runner not to be called, got %s", r.call)
			}
		})
	}
}

func TestRunnerFactoryError(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	boom := errors.New("Gemini API key is required")
	cmd := CreateRootCommand(NewFlags(), func() (Runner, error) { return nil, boom })
	cmd.SetArgs([]string{"analyze", "Njan pokunnu"})
	if err := cmd.Execute(); !errors.Is(err, boom) {
		t.Errorf("Expected factory error, got %v", err)
	}
}
