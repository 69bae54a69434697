// Package llm sends rendered prompts to a large language model and returns
// the raw completion text. Adapters exist for Gemini (google.golang.org/genai),
// OpenAI (go-openai) and OpenRouter (an OpenAI compatible HTTP API reached
// through resty). The package does not retry and does not interpret replies;
// parsing and validation live in the reply package.
package llm
