// Package reply validates raw model completions against the output shape
// each capability declares and converts them into dialect result values.
package reply
