// Package translation implements the capability functions of slangify:
// dialect translation into the fourteen Kerala districts, dialect
// detection, reverse translation into standard Malayalam, cultural
// insights, meaning match scoring and text-to-speech. Each function renders
// its prompt template, invokes the configured model and validates the reply
// into a typed result.
package translation
