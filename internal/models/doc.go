// Package models lists the models available to the configured provider
// key and groups them into text generation and speech models.
package models
