// Package prompt holds the instruction template, output-shape declaration
// and safety configuration of every capability. Templates are embedded text
// files rendered with text/template.
package prompt
