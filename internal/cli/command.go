package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/slangify/internal"
	"codeberg.org/snonux/slangify/internal/dialect"
)

// Runner executes the commands. processor.Processor implements it.
type Runner interface {
	RunGUI() error
	ListModels(ctx context.Context) error
	Translate(ctx context.Context, sentence string, intensity dialect.Intensity) error
	TranslateBatch(ctx context.Context, file string, intensity dialect.Intensity) error
	Analyze(ctx context.Context, sentence string) error
	Reverse(ctx context.Context, slang string, district dialect.District) error
	Insights(ctx context.Context, district dialect.District) error
	Speak(ctx context.Context, text string, district dialect.District, output string) error
	Score(ctx context.Context, original, converted string, district dialect.District) error
	Serve(ctx context.Context, address string) error
}

// RunnerFactory builds the runner once configuration is loaded.
type RunnerFactory func() (Runner, error)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags, newRunner RunnerFactory) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "slangify",
		Short: "Kerala dialect converter for Manglish sentences",
		Long: `slangify converts a Manglish sentence into the slang of all 14
Kerala districts, detects which dialect a sentence is written in,
translates slang back into standard Malayalam and reads it aloud.

Examples:
  slangify                                      # Launch interactive GUI (default)
  slangify translate "Njan pokunnu"             # Convert into all 14 dialects
  slangify translate --batch sentences.txt      # Convert every line of a file
  slangify reverse -d Thrissur "enthoottaa"     # Back to standard Malayalam
  slangify serve --addr :9002                   # Run the JSON API`,
		Args:          cobra.NoArgs,
		Version:       internal.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := newRunner()
			if err != nil {
				return err
			}
			if flags.ListModels {
				return r.ListModels(cmd.Context())
			}
			return r.RunGUI()
		},
	}

	setupFlags(rootCmd, flags)

	rootCmd.AddCommand(
		translateCommand(flags, newRunner),
		analyzeCommand(newRunner),
		reverseCommand(flags, newRunner),
		insightsCommand(newRunner),
		speakCommand(flags, newRunner),
		scoreCommand(flags, newRunner),
		serveCommand(flags, newRunner),
	)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.slangify.yaml)")
	cmd.PersistentFlags().StringVar(&flags.Provider, "provider", flags.Provider, "Model provider: gemini, openai or openrouter")
	cmd.PersistentFlags().StringVar(&flags.Model, "model", "", "Model name (default depends on the provider)")
	cmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "Log level: debug, info, warn or error")
	cmd.PersistentFlags().StringVar(&flags.LogFormat, "log-format", flags.LogFormat, "Log format: console or json")

	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List available models for the configured provider")

	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("model.provider", cmd.PersistentFlags().Lookup("provider"))
	viper.BindPFlag("model.name", cmd.PersistentFlags().Lookup("model"))
	viper.BindPFlag("log.level", cmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log.format", cmd.PersistentFlags().Lookup("log-format"))
}

func translateCommand(flags *Flags, newRunner RunnerFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "translate [sentence]",
		Short: "Convert a sentence into all 14 district dialects",
		RunE: func(cmd *cobra.Command, args []string) error {
			intensity, err := dialect.ParseIntensity(flags.Intensity)
			if err != nil {
				return err
			}
			if flags.BatchFile == "" && len(args) == 0 {
				return fmt.Errorf("a sentence or --batch file is required")
			}
			if flags.BatchFile != "" && len(args) > 0 {
				return fmt.Errorf("use either a sentence or --batch, not both")
			}

			r, err := newRunner()
			if err != nil {
				return err
			}
			if flags.BatchFile != "" {
				return r.TranslateBatch(cmd.Context(), flags.BatchFile, intensity)
			}
			return r.Translate(cmd.Context(), joinArgs(args), intensity)
		},
	}
	cmd.Flags().StringVarP(&flags.Intensity, "intensity", "i", flags.Intensity, "Slang intensity: low, medium or high")
	cmd.Flags().StringVarP(&flags.BatchFile, "batch", "b", "", "Translate sentences from file (one per line)")
	return cmd
}

func analyzeCommand(newRunner RunnerFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <sentence>",
		Short: "Detect which district dialect a sentence is written in",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := newRunner()
			if err != nil {
				return err
			}
			return r.Analyze(cmd.Context(), joinArgs(args))
		},
	}
}

func reverseCommand(flags *Flags, newRunner RunnerFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reverse --district <district> <slang>",
		Short: "Translate district slang back into standard Malayalam",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := dialect.ParseDistrict(flags.District)
			if err != nil {
				return err
			}
			r, err := newRunner()
			if err != nil {
				return err
			}
			return r.Reverse(cmd.Context(), joinArgs(args), d)
		},
	}
	cmd.Flags().StringVarP(&flags.District, "district", "d", "", "District whose dialect the slang is in")
	cmd.MarkFlagRequired("district")
	return cmd
}

func insightsCommand(newRunner RunnerFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "insights <district>",
		Short: "Show cultural insights and popular phrases of a district",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := dialect.ParseDistrict(args[0])
			if err != nil {
				return err
			}
			r, err := newRunner()
			if err != nil {
				return err
			}
			return r.Insights(cmd.Context(), d)
		},
	}
}

func speakCommand(flags *Flags, newRunner RunnerFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "speak <text>",
		Short: "Synthesize Malayalam speech into an audio file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var d dialect.District
			if flags.District != "" {
				var err error
				if d, err = dialect.ParseDistrict(flags.District); err != nil {
					return err
				}
			}
			r, err := newRunner()
			if err != nil {
				return err
			}
			return r.Speak(cmd.Context(), joinArgs(args), d, flags.Output)
		},
	}
	cmd.Flags().StringVarP(&flags.Output, "output", "o", "", "Output file (default: generated name in the current directory)")
	cmd.Flags().StringVarP(&flags.District, "district", "d", "", "Speak with the accent of a district")
	return cmd
}

func scoreCommand(flags *Flags, newRunner RunnerFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score --district <district> <original> <converted>",
		Short: "Rate how well a converted sentence keeps the original meaning",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := dialect.ParseDistrict(flags.District)
			if err != nil {
				return err
			}
			r, err := newRunner()
			if err != nil {
				return err
			}
			return r.Score(cmd.Context(), args[0], args[1], d)
		},
	}
	cmd.Flags().StringVarP(&flags.District, "district", "d", "", "District of the converted sentence")
	cmd.MarkFlagRequired("district")
	return cmd
}

func serveCommand(flags *Flags, newRunner RunnerFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the capabilities as a JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := newRunner()
			if err != nil {
				return err
			}
			return r.Serve(cmd.Context(), viper.GetString("server.address"))
		},
	}
	cmd.Flags().StringVar(&flags.Address, "addr", flags.Address, "Listen address")
	viper.BindPFlag("server.address", cmd.Flags().Lookup("addr"))
	return cmd
}

func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
