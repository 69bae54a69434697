package processor

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"codeberg.org/snonux/slangify/internal"
	"codeberg.org/snonux/slangify/internal/audio"
	"codeberg.org/snonux/slangify/internal/batch"
	"codeberg.org/snonux/slangify/internal/boundary"
	"codeberg.org/snonux/slangify/internal/cli"
	"codeberg.org/snonux/slangify/internal/dialect"
	"codeberg.org/snonux/slangify/internal/gui"
	"codeberg.org/snonux/slangify/internal/llm"
	"codeberg.org/snonux/slangify/internal/logging"
	"codeberg.org/snonux/slangify/internal/models"
	"codeberg.org/snonux/slangify/internal/server"
)

// Processor runs the commands against one configured boundary
type Processor struct {
	client   llm.Client
	boundary *boundary.Boundary
	logger   *zap.Logger
	out      io.Writer
}

// NewProcessor builds a processor from the loaded configuration
func NewProcessor(ctx context.Context) (*Processor, error) {
	logger, err := logging.New(viper.GetString("log.level"), viper.GetString("log.format"))
	if err != nil {
		return nil, err
	}

	b, client, err := cli.NewBackend(ctx, logger)
	if err != nil {
		return nil, err
	}

	return &Processor{
		client:   client,
		boundary: b,
		logger:   logger,
		out:      os.Stdout,
	}, nil
}

func newProcessor(client llm.Client, speech audio.Provider, logger *zap.Logger) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{
		client:   client,
		boundary: cli.NewBoundary(client, speech, logger),
		logger:   logger,
		out:      os.Stdout,
	}
}

// RunGUI launches the desktop application
func (p *Processor) RunGUI() error {
	guiConfig := gui.DefaultConfig()
	guiConfig.Session = cli.SessionConfig()

	app := gui.New(p.boundary, guiConfig, p.logger)
	app.Run()

	return nil
}

// Serve runs the JSON API until ctx is cancelled
func (p *Processor) Serve(ctx context.Context, address string) error {
	config := cli.ServerConfig()
	if address != "" {
		config.Address = address
	}
	return server.New(p.boundary, config, p.logger).Run(ctx)
}

// ListModels prints the models of the configured provider
func (p *Processor) ListModels(ctx context.Context) error {
	lister := models.NewLister(p.client)
	lister.SetOutput(p.out)
	return lister.ListAvailableModels(ctx)
}

// Translate prints the fourteen district renderings of a sentence
func (p *Processor) Translate(ctx context.Context, sentence string, intensity dialect.Intensity) error {
	fmt.Fprintf(p.out, "Translating: %s (slang intensity: %s)\n\n", sentence, intensity.Label())

	results, err := p.boundary.Translate(ctx, dialect.TranslationRequest{Sentence: sentence, Intensity: intensity})
	if err != nil {
		return err
	}
	p.printResults(results)
	return nil
}

// TranslateBatch translates every sentence of a batch file
func (p *Processor) TranslateBatch(ctx context.Context, file string, intensity dialect.Intensity) error {
	entries, err := batch.ReadBatchFile(file, intensity)
	if err != nil {
		return err
	}

	processedCount := 0
	errorCount := 0

	for i, entry := range entries {
		fmt.Fprintf(p.out, "\nProcessing %d/%d (line %d): %s [%s]\n", i+1, len(entries), entry.Line, entry.Sentence, entry.Intensity.Label())

		results, err := p.boundary.Translate(ctx, dialect.TranslationRequest{Sentence: entry.Sentence, Intensity: entry.Intensity})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error translating line %d: %v\n", entry.Line, err)
			errorCount++
			continue
		}
		p.printResults(results)
		processedCount++
	}

	fmt.Fprintf(p.out, "\n=== Batch Translation Summary ===\n")
	fmt.Fprintf(p.out, "Total sentences: %d\n", len(entries))
	fmt.Fprintf(p.out, "Translated: %d\n", processedCount)
	if errorCount > 0 {
		fmt.Fprintf(p.out, "Errors: %d\n", errorCount)
	}
	fmt.Fprintf(p.out, "=================================\n")

	if errorCount > 0 {
		return fmt.Errorf("%d of %d sentences failed", errorCount, len(entries))
	}
	return nil
}

// Analyze prints the detected dialect of a sentence
func (p *Processor) Analyze(ctx context.Context, sentence string) error {
	res, err := p.boundary.Analyze(ctx, dialect.AnalysisRequest{Sentence: sentence})
	if err != nil {
		return err
	}
	if res.IsStandard {
		fmt.Fprintf(p.out, "Dialect: Standard Malayalam (confidence %d%%)\n", res.Confidence)
		return nil
	}
	fmt.Fprintf(p.out, "Dialect: %s (confidence %d%%)\n", res.Dialect, res.Confidence)
	return nil
}

// Reverse prints slang converted back to standard Malayalam
func (p *Processor) Reverse(ctx context.Context, slang string, district dialect.District) error {
	res, err := p.boundary.Reverse(ctx, dialect.ReverseRequest{SlangSentence: slang, District: district})
	if err != nil {
		return err
	}
	fmt.Fprintf(p.out, "Standard Malayalam: %s\n", res.StandardSentence)
	return nil
}

// Insights prints the cultural insight and popular phrases of a district
func (p *Processor) Insights(ctx context.Context, district dialect.District) error {
	res, err := p.boundary.Insights(ctx, dialect.InsightRequest{District: district})
	if err != nil {
		return err
	}
	fmt.Fprintf(p.out, "%s\n\n%s\n\nPopular phrases:\n", district, res.Insight)
	for _, phrase := range res.PopularPhrases {
		fmt.Fprintf(p.out, "  - %s\n", phrase)
	}
	return nil
}

// Score prints the meaning match score of a conversion
func (p *Processor) Score(ctx context.Context, original, converted string, district dialect.District) error {
	res, err := p.boundary.Score(ctx, dialect.ScoreRequest{
		OriginalSentence:  original,
		ConvertedSentence: converted,
		District:          district,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(p.out, "Meaning match (%s): %d%%\n", district, res.MeaningMatchScore)
	return nil
}

// Speak synthesizes text and writes the clip to output
func (p *Processor) Speak(ctx context.Context, text string, district dialect.District, output string) error {
	clip, err := p.boundary.Speak(ctx, dialect.SpeechRequest{Text: text, District: district})
	if err != nil {
		return err
	}

	if output == "" {
		output = "slangify_" + internal.GenerateClipID(text) + clip.Extension()
	}
	if err := os.WriteFile(output, clip.Audio, 0644); err != nil {
		return fmt.Errorf("failed to write audio file: %w", err)
	}

	fmt.Fprintf(p.out, "Audio saved to: %s (%s, %d bytes)\n", output, clip.MIMEType, len(clip.Audio))
	return nil
}

func (p *Processor) printResults(results []dialect.DialectResult) {
	width := 0
	for _, r := range results {
		if n := len(r.District.String()); n > width {
			width = n
		}
	}
	for _, r := range results {
		fmt.Fprintf(p.out, "  %-*s %3d%%  %s\n", width, r.District, r.MeaningMatchScore, strings.TrimSpace(r.Slang))
	}
}
