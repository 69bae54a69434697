package gui

import (
	"fmt"
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"
	"go.uber.org/zap"

	"codeberg.org/snonux/slangify/internal"
	"codeberg.org/snonux/slangify/internal/dialect"
	"codeberg.org/snonux/slangify/internal/surface"
)

// defaultSentence is shown on startup.
const defaultSentence = "Njan nattilekku pokunnu, veettil ellavarum enthu cheyyunnu?"

// Application represents the main GUI application
type Application struct {
	app     fyne.App
	window  fyne.Window
	session *surface.Session
	logger  *zap.Logger

	// UI elements
	sentenceEntry  *SentenceEntry
	intensity      *widget.Slider
	intensityLabel *widget.Label
	analysisLabel  *widget.Label
	convertButton  *ttwidget.Button
	helpButton     *ttwidget.Button
	progress       *widget.ProgressBarInfinite
	statusLabel    *widget.Label
	placeholder    *widget.Label
	resultGrid     *fyne.Container
	cards          map[dialect.District]*ResultCard
	audioPlayer    *AudioPlayer

	// Rendered state, touched on the fyne goroutine only
	shown        surface.Dialog
	dialog       dialog.Dialog
	hidingDialog bool
	clip         *dialect.SpeechResult
	clipText     string
	speaking     dialect.District
}

// Config holds GUI application configuration
type Config struct {
	Session  surface.Config
	AudioDir string
}

// DefaultConfig returns default GUI configuration
func DefaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	// Use XDG Base Directory specification for state data
	audioDir := filepath.Join(homeDir, ".local", "state", "slangify", "audio")

	return &Config{
		Session:  surface.DefaultConfig(),
		AudioDir: audioDir,
	}
}

// New creates a new GUI application over backend
func New(backend surface.Backend, config *Config, logger *zap.Logger) *Application {
	if config == nil {
		config = DefaultConfig()
	} else if config.AudioDir == "" {
		config.AudioDir = DefaultConfig().AudioDir
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	a := &Application{
		app:    app.NewWithID("org.codeberg.snonux.slangify"),
		logger: logger,
		cards:  make(map[dialect.District]*ResultCard, dialect.DistrictCount),
	}

	a.session = surface.NewSession(backend,
		surface.WithConfig(config.Session),
		surface.WithLogger(logger),
		surface.WithObserver(func(snap surface.Snapshot) {
			fyne.Do(func() { a.render(snap) })
		}),
		surface.WithToast(func(title, message string) {
			fyne.Do(func() { a.showToast(title, message) })
		}),
	)

	a.setupUI(config)
	return a
}

// setupUI creates the main user interface
func (a *Application) setupUI(config *Config) {
	a.window = a.app.NewWindow(fmt.Sprintf("Slangify v%s - Kerala Dialect Converter", internal.Version))
	a.window.Resize(fyne.NewSize(1000, 800))

	a.sentenceEntry = NewSentenceEntry()
	a.sentenceEntry.SetPlaceHolder("Type a Manglish sentence... (Ctrl+Enter to convert)")
	a.sentenceEntry.SetMinRowsVisible(3)
	a.sentenceEntry.SetText(defaultSentence)
	a.sentenceEntry.OnChanged = a.session.SetSentence
	a.sentenceEntry.SetOnSubmit(a.onConvert)
	a.sentenceEntry.SetOnEscape(func() { a.window.Canvas().Unfocus() })

	a.intensityLabel = widget.NewLabel("")
	a.intensity = widget.NewSlider(0, 2)
	a.intensity.Step = 1
	a.intensity.Value = a.session.Snapshot().Intensity.SliderValue()
	a.intensity.OnChanged = func(v float64) {
		a.session.SetIntensitySlider(v)
	}

	a.analysisLabel = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Italic: true})

	a.convertButton = ttwidget.NewButtonWithIcon("Convert", theme.ConfirmIcon(), a.onConvert)
	a.convertButton.Importance = widget.HighImportance
	a.helpButton = ttwidget.NewButtonWithIcon("", theme.HelpIcon(), a.onShowHotkeys)

	a.progress = widget.NewProgressBarInfinite()
	a.progress.Stop()
	a.progress.Hide()

	inputSection := container.NewVBox(
		widget.NewLabelWithStyle("Your sentence", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		a.sentenceEntry,
		a.analysisLabel,
		container.NewBorder(nil, nil, a.intensityLabel, nil, a.intensity),
		container.NewHBox(a.convertButton, layout.NewSpacer(), a.helpButton),
		a.progress,
	)

	a.placeholder = widget.NewLabel("Results from all 14 districts will appear here in Malayalam script.")
	a.placeholder.Wrapping = fyne.TextWrapWord

	a.resultGrid = container.NewGridWithColumns(2)
	for _, d := range dialect.Districts() {
		card := NewResultCard(d, a.onReverse, a.onInsights, a.onSpeak)
		a.cards[d] = card
		a.resultGrid.Add(card)
	}
	a.resultGrid.Hide()

	a.audioPlayer = NewAudioPlayer(config.AudioDir)
	a.statusLabel = widget.NewLabel("Ready")

	resultsSection := container.NewBorder(
		widget.NewLabelWithStyle("Dialect Translations (Malayalam)", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		nil, nil, nil,
		container.NewVScroll(container.NewVBox(a.placeholder, a.resultGrid)),
	)

	statusSection := container.NewVBox(
		widget.NewSeparator(),
		a.audioPlayer,
		a.statusLabel,
	)

	content := container.NewBorder(
		container.NewVBox(inputSection, widget.NewSeparator()),
		statusSection,
		nil, nil,
		resultsSection,
	)

	a.window.SetContent(fynetooltip.AddWindowToolTipLayer(content, a.window.Canvas()))
	a.setupTooltips()

	a.window.SetOnClosed(func() {
		a.session.Close()
		a.audioPlayer.Clear()
	})

	a.setupKeyboardShortcuts()

	a.app.Lifecycle().SetOnStarted(func() {
		a.render(a.session.Snapshot())
		a.session.SetSentence(a.sentenceEntry.Text)
	})
}

// Run starts the GUI application
func (a *Application) Run() {
	a.window.ShowAndRun()
}

func (a *Application) setupTooltips() {
	a.convertButton.SetToolTip("Convert into all 14 dialects (Ctrl+Enter)")
	a.helpButton.SetToolTip("Show hotkeys (h)")
	a.audioPlayer.SetToolTips()
	for _, c := range a.cards {
		c.SetToolTips()
	}
}

func (a *Application) onConvert() {
	a.window.Canvas().Unfocus()
	a.session.Translate()
}

func (a *Application) onReverse(d dialect.District, slang string) {
	a.session.SelectDistrict(d)
	a.session.ReverseTranslate(slang, d)
}

func (a *Application) onInsights(d dialect.District, _ string) {
	a.session.SelectDistrict(d)
	a.session.Insights(d)
}

func (a *Application) onSpeak(d dialect.District, slang string) {
	a.speaking = d
	a.clipText = slang
	a.session.Speak(slang, d)
}

// render applies a session snapshot to the widgets
func (a *Application) render(snap surface.Snapshot) {
	a.intensityLabel.SetText(intensityText(snap.Intensity))
	a.analysisLabel.SetText(analysisText(snap))
	a.statusLabel.SetText(statusText(snap))

	if snap.Translate == surface.Pending {
		a.convertButton.Disable()
		a.progress.Show()
		a.progress.Start()
	} else {
		a.convertButton.Enable()
		a.progress.Stop()
		a.progress.Hide()
	}

	if len(snap.Results) > 0 {
		highlight := detectedDistrict(snap)
		for _, r := range snap.Results {
			if c, ok := a.cards[r.District]; ok {
				c.SetResult(r)
				c.SetHighlighted(r.District == highlight)
				c.SetBusy(snap.Speech == surface.Pending && r.District == a.speaking)
			}
		}
		a.placeholder.Hide()
		a.resultGrid.Show()
	} else {
		a.resultGrid.Hide()
		a.placeholder.Show()
	}

	if snap.Speech == surface.Succeeded && snap.Clip != nil && snap.Clip != a.clip {
		a.clip = snap.Clip
		if err := a.audioPlayer.Load(snap.Clip, snap.ClipDistrict, a.clipText); err != nil {
			a.logger.Warn("failed to load clip", zap.Error(err))
			a.showToast("Error", err.Error())
		} else {
			a.audioPlayer.Play()
		}
	}

	a.renderDialog(snap.Dialog)
}

// renderDialog keeps the modal in sync with the shared dialog slot
func (a *Application) renderDialog(d surface.Dialog) {
	if sameDialog(a.shown, d) {
		return
	}
	a.shown = d

	if a.dialog != nil {
		a.hidingDialog = true
		a.dialog.Hide()
		a.hidingDialog = false
		a.dialog = nil
	}
	if !d.Open() {
		return
	}

	body := widget.NewRichTextFromMarkdown(dialogMarkdown(d))
	body.Wrapping = fyne.TextWrapWord
	scroll := container.NewVScroll(container.NewPadded(body))
	scroll.SetMinSize(fyne.NewSize(520, 220))

	dlg := dialog.NewCustom(dialogTitle(d), "Close", scroll, a.window)
	dlg.SetOnClosed(func() {
		if !a.hidingDialog {
			a.session.CloseDialog()
		}
	})
	a.dialog = dlg
	dlg.Show()
}

func (a *Application) showToast(title, message string) {
	dialog.ShowInformation(title, message, a.window)
}

func (a *Application) setupKeyboardShortcuts() {
	a.window.Canvas().SetOnTypedRune(func(r rune) {
		if a.window.Canvas().Focused() == a.sentenceEntry {
			return
		}

		switch r {
		case 's', 'S':
			a.window.Canvas().Focus(a.sentenceEntry)
		case 'c', 'C':
			a.onConvert()
		case 'p', 'P':
			a.audioPlayer.Play()
		case '1':
			a.intensity.SetValue(0)
		case '2':
			a.intensity.SetValue(1)
		case '3':
			a.intensity.SetValue(2)
		case 'h', 'H':
			a.onShowHotkeys()
		case 'q', 'Q':
			a.app.Quit()
		}
	})
}

func (a *Application) onShowHotkeys() {
	hotkeys := `## Input
**s** Focus sentence
**Esc** Unfocus field
**Ctrl+Enter** Convert while typing

## Actions
**c** Convert into all dialects
**1 / 2 / 3** Low / medium / high slang
**p** Play last audio

## Help
**h** Show hotkeys
**q** Quit application`

	content := widget.NewRichTextFromMarkdown(hotkeys)
	content.Wrapping = fyne.TextWrapWord

	scroll := container.NewScroll(container.NewPadded(content))
	scroll.SetMinSize(fyne.NewSize(420, 320))

	dialog.NewCustom("Keyboard Shortcuts", "Close", scroll, a.window).Show()
}
