package dialect

import "errors"

var (
	// ErrInvalidInput marks caller input rejected before any model call.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyResponse marks a model reply without usable content.
	ErrEmptyResponse = errors.New("the AI model returned an empty response")

	// ErrSchemaMismatch marks a model reply that does not fit the declared shape.
	ErrSchemaMismatch = errors.New("model reply does not match the declared output shape")

	// ErrService marks any other failure talking to the model.
	ErrService = errors.New("model service error")
)
