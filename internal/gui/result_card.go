package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"codeberg.org/snonux/slangify/internal/dialect"
)

// ResultCard shows one district's translation with its meaning match score.
type ResultCard struct {
	widget.BaseWidget

	district dialect.District
	slang    string

	container  *fyne.Container
	title      *widget.Label
	slangLabel *widget.Label
	scoreLabel *widget.Label
	scoreBar   *widget.ProgressBar

	reverseButton *ttwidget.Button
	insightButton *ttwidget.Button
	speakButton   *ttwidget.Button
}

// NewResultCard creates the card of district d. The callbacks receive the
// district and its current slang sentence.
func NewResultCard(d dialect.District, onReverse, onInsight, onSpeak func(dialect.District, string)) *ResultCard {
	c := &ResultCard{district: d}

	c.title = widget.NewLabelWithStyle(d.String(), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	c.slangLabel = widget.NewLabel("")
	c.slangLabel.Wrapping = fyne.TextWrapWord
	c.scoreLabel = widget.NewLabel("")
	c.scoreBar = widget.NewProgressBar()
	c.scoreBar.Max = 100
	c.scoreBar.TextFormatter = func() string { return "" }

	c.reverseButton = ttwidget.NewButtonWithIcon("Translate Back", theme.ViewRefreshIcon(), func() { onReverse(c.district, c.slang) })
	c.insightButton = ttwidget.NewButtonWithIcon("Insights", theme.InfoIcon(), func() { onInsight(c.district, c.slang) })
	c.speakButton = ttwidget.NewButtonWithIcon("", theme.VolumeUpIcon(), func() { onSpeak(c.district, c.slang) })

	c.container = container.NewVBox(
		c.title,
		c.slangLabel,
		container.NewBorder(nil, nil, widget.NewLabel("Meaning Match"), c.scoreLabel, c.scoreBar),
		widget.NewSeparator(),
		container.NewHBox(c.reverseButton, c.insightButton, c.speakButton),
	)

	c.ExtendBaseWidget(c)
	return c
}

// CreateRenderer implements fyne.Widget
func (c *ResultCard) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(c.container)
}

// SetToolTips sets the button tooltips once the tooltip layer exists.
func (c *ResultCard) SetToolTips() {
	c.reverseButton.SetToolTip("Convert back to standard Malayalam")
	c.insightButton.SetToolTip(fmt.Sprintf("Cultural insights about %s", c.district))
	c.speakButton.SetToolTip("Speak this sentence")
}

// SetResult shows a translation.
func (c *ResultCard) SetResult(r dialect.DialectResult) {
	c.slang = r.Slang
	c.slangLabel.SetText(r.Slang)
	c.scoreLabel.SetText(scoreText(r.MeaningMatchScore))
	c.scoreBar.SetValue(float64(r.MeaningMatchScore))
}

// SetHighlighted marks the card as the detected or selected district.
func (c *ResultCard) SetHighlighted(on bool) {
	c.title.Importance = widget.MediumImportance
	c.title.SetText(c.district.String())
	if on {
		c.title.Importance = widget.HighImportance
		c.title.SetText("★ " + c.district.String())
	}
}

// SetBusy disables the actions while a request of this card is running.
func (c *ResultCard) SetBusy(busy bool) {
	for _, b := range []*ttwidget.Button{c.reverseButton, c.insightButton, c.speakButton} {
		if busy {
			b.Disable()
		} else {
			b.Enable()
		}
	}
}
