// Package batch reads batch files for the translate command. Each line is a
// sentence, optionally prefixed with "low:", "medium:" or "high:" to set
// its slang intensity. Blank lines and lines starting with # are skipped.
package batch
