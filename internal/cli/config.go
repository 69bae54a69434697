package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"codeberg.org/snonux/slangify/internal/audio"
	"codeberg.org/snonux/slangify/internal/llm"
	"codeberg.org/snonux/slangify/internal/server"
	"codeberg.org/snonux/slangify/internal/surface"
)

// InitConfig loads .env, the config file and the environment into viper
func InitConfig(cfgFile string) {
	// Credentials in .env are optional
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
		} else {
			viper.AddConfigPath(home)
		}

		// Search config in home and working directory with name ".slangify" (without extension)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".slangify")
	}

	viper.SetEnvPrefix("SLANGIFY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	SetDefaults()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// SetDefaults registers the default of every configuration key
func SetDefaults() {
	viper.SetDefault("model.provider", llm.ProviderGemini)
	viper.SetDefault("model.temperature", 0.4)

	speech := audio.DefaultProviderConfig()
	viper.SetDefault("speech.provider", speech.Provider)
	viper.SetDefault("speech.fallback", "")
	viper.SetDefault("speech.gemini_model", speech.GeminiModel)
	viper.SetDefault("speech.openai_model", speech.OpenAIModel)
	viper.SetDefault("speech.openai_speed", speech.OpenAISpeed)
	viper.SetDefault("speech.openai_format", speech.OpenAIFormat)

	srv := server.DefaultConfig()
	viper.SetDefault("server.address", srv.Address)
	viper.SetDefault("server.shutdown_timeout", srv.ShutdownTimeout)
	viper.SetDefault("server.allow_origins", srv.AllowOrigins)
	viper.SetDefault("server.translate_timeout", 120*time.Second)

	session := surface.DefaultConfig()
	viper.SetDefault("surface.debounce", session.Debounce)
	viper.SetDefault("surface.min_analysis_length", session.MinAnalysisLength)

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "console")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	if key := os.Getenv("GOOGLE_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("model.gemini_key")
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("model.openai_key")
}

// GetOpenRouterKey retrieves the OpenRouter API key from environment or config
func GetOpenRouterKey() string {
	if key := os.Getenv("OPENROUTER_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("model.openrouter_key")
}

// ModelConfig returns the model client settings
func ModelConfig() *llm.Config {
	return &llm.Config{
		Provider:      viper.GetString("model.provider"),
		Model:         viper.GetString("model.name"),
		Temperature:   float32(viper.GetFloat64("model.temperature")),
		GeminiKey:     GetGeminiKey(),
		OpenAIKey:     GetOpenAIKey(),
		OpenRouterKey: GetOpenRouterKey(),
		BaseURL:       viper.GetString("model.base_url"),
	}
}

// SpeechConfig returns the speech provider settings for provider; an empty
// provider selects speech.provider.
func SpeechConfig(provider string) *audio.Config {
	if provider == "" {
		provider = viper.GetString("speech.provider")
	}
	config := audio.DefaultProviderConfig()
	config.Provider = provider
	config.GeminiKey = GetGeminiKey()
	config.GeminiModel = viper.GetString("speech.gemini_model")
	config.OpenAIKey = GetOpenAIKey()
	config.OpenAIModel = viper.GetString("speech.openai_model")
	config.OpenAISpeed = viper.GetFloat64("speech.openai_speed")
	config.OpenAIFormat = viper.GetString("speech.openai_format")

	// speech.voice applies to whichever provider is selected
	if voice := viper.GetString("speech.voice"); voice != "" {
		switch provider {
		case "openai":
			config.OpenAIVoice = voice
		default:
			config.GeminiVoice = voice
		}
	}
	return config
}

// ServerConfig returns the HTTP server settings
func ServerConfig() *server.Config {
	return &server.Config{
		Address:         viper.GetString("server.address"),
		ShutdownTimeout: viper.GetDuration("server.shutdown_timeout"),
		AllowOrigins:    viper.GetString("server.allow_origins"),
	}
}

// TranslateTimeout returns the ceiling of a translate call
func TranslateTimeout() time.Duration {
	return viper.GetDuration("server.translate_timeout")
}

// SessionConfig returns the interactive session settings
func SessionConfig() surface.Config {
	return surface.Config{
		Debounce:          viper.GetDuration("surface.debounce"),
		MinAnalysisLength: viper.GetInt("surface.min_analysis_length"),
	}
}
