// Package audio turns Malayalam text into speech. Two providers exist:
// Gemini text-to-speech, which returns raw PCM that is wrapped into a WAV
// container, and OpenAI text-to-speech, which returns an encoded clip
// directly. A fallback wrapper tries a second provider when the first fails.
package audio
