package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// SentenceEntry is a multi-line entry that submits on Ctrl+Enter and
// unfocuses on Escape.
type SentenceEntry struct {
	widget.Entry
	onEscape func()
	onSubmit func()
}

// NewSentenceEntry creates a new sentence entry
func NewSentenceEntry() *SentenceEntry {
	entry := &SentenceEntry{}
	entry.MultiLine = true
	entry.Wrapping = fyne.TextWrapWord
	entry.ExtendBaseWidget(entry)
	return entry
}

// TypedKey handles key events
func (e *SentenceEntry) TypedKey(key *fyne.KeyEvent) {
	if key.Name == fyne.KeyEscape && e.onEscape != nil {
		e.onEscape()
		return
	}
	e.Entry.TypedKey(key)
}

// TypedShortcut handles Ctrl+Enter
func (e *SentenceEntry) TypedShortcut(s fyne.Shortcut) {
	if isSubmitShortcut(s) && e.onSubmit != nil {
		e.onSubmit()
		return
	}
	e.Entry.TypedShortcut(s)
}

// SetOnEscape sets the callback for when Escape is pressed
func (e *SentenceEntry) SetOnEscape(f func()) {
	e.onEscape = f
}

// SetOnSubmit sets the callback for Ctrl+Enter
func (e *SentenceEntry) SetOnSubmit(f func()) {
	e.onSubmit = f
}

func isSubmitShortcut(s fyne.Shortcut) bool {
	cs, ok := s.(*desktop.CustomShortcut)
	if !ok {
		return false
	}
	if cs.KeyName != fyne.KeyReturn && cs.KeyName != fyne.KeyEnter {
		return false
	}
	return cs.Modifier&(fyne.KeyModifierControl|fyne.KeyModifierSuper) != 0
}
