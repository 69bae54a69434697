package cli

// Flags holds all command-line flag values
type Flags struct {
	// Global flags
	CfgFile    string
	Provider   string
	Model      string
	LogLevel   string
	LogFormat  string
	ListModels bool

	// Subcommand flags
	Intensity string
	BatchFile string
	District  string
	Output    string
	Address   string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		Provider:  "gemini",
		LogLevel:  "info",
		LogFormat: "console",
		Intensity: "medium",
		Address:   ":9002",
	}
}
