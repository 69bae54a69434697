package gui

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"codeberg.org/snonux/slangify/internal"
	"codeberg.org/snonux/slangify/internal/dialect"
)

// AudioPlayer plays synthesized clips through a platform player command.
type AudioPlayer struct {
	widget.BaseWidget

	container   *fyne.Container
	playButton  *ttwidget.Button
	stopButton  *ttwidget.Button
	statusLabel *widget.Label

	dir       string
	audioFile string
	label     string
	isPlaying bool
	playCmd   *exec.Cmd
}

// NewAudioPlayer creates a player that keeps its clips in dir.
func NewAudioPlayer(dir string) *AudioPlayer {
	p := &AudioPlayer{dir: dir}

	p.playButton = ttwidget.NewButton("", p.onPlay)
	p.playButton.Icon = theme.MediaPlayIcon()

	p.stopButton = ttwidget.NewButton("", p.onStop)
	p.stopButton.Icon = theme.MediaStopIcon()

	p.statusLabel = widget.NewLabel("No audio loaded")

	p.playButton.Disable()
	p.stopButton.Disable()

	p.container = container.NewHBox(
		p.playButton,
		p.stopButton,
		layout.NewSpacer(),
		p.statusLabel,
	)

	p.ExtendBaseWidget(p)
	return p
}

// CreateRenderer implements fyne.Widget
func (p *AudioPlayer) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(p.container)
}

// SetToolTips sets the button tooltips once the tooltip layer exists.
func (p *AudioPlayer) SetToolTips() {
	p.playButton.SetToolTip("Play audio (p)")
	p.stopButton.SetToolTip("Stop audio")
}

// Load writes a clip to disk and makes it playable.
func (p *AudioPlayer) Load(clip *dialect.SpeechResult, district dialect.District, text string) error {
	p.onStop()

	if err := os.MkdirAll(p.dir, 0755); err != nil {
		return fmt.Errorf("failed to create audio directory: %w", err)
	}
	name := internal.GenerateClipID(text)
	if district != "" {
		name = internal.SanitizeFilename(district.String()) + "_" + name
	}
	path := filepath.Join(p.dir, name+clip.Extension())
	if err := os.WriteFile(path, clip.Audio, 0644); err != nil {
		return fmt.Errorf("failed to write audio file: %w", err)
	}

	if p.audioFile != "" {
		os.Remove(p.audioFile)
	}
	p.audioFile = path
	p.label = clipLabel(district)
	p.playButton.Enable()
	p.statusLabel.SetText("Audio: " + p.label)
	return nil
}

// Clear stops playback and removes the current clip.
func (p *AudioPlayer) Clear() {
	p.onStop()
	if p.audioFile != "" {
		os.Remove(p.audioFile)
	}
	p.audioFile = ""
	p.label = ""
	p.playButton.Disable()
	p.stopButton.Disable()
	p.statusLabel.SetText("No audio loaded")
}

// Play triggers audio playback
func (p *AudioPlayer) Play() {
	if !p.playButton.Disabled() && !p.isPlaying {
		p.onPlay()
	}
}

// onPlay handles play button click
func (p *AudioPlayer) onPlay() {
	if p.audioFile == "" {
		return
	}

	if p.isPlaying {
		p.onStop()
		return
	}

	if err := p.startPlayback(); err != nil {
		p.statusLabel.SetText(fmt.Sprintf("Error: %v", err))
		return
	}

	p.isPlaying = true
	p.playButton.SetIcon(theme.MediaPauseIcon())
	p.stopButton.Enable()
	p.statusLabel.SetText("Playing: " + p.label)
}

// onStop handles stop button click
func (p *AudioPlayer) onStop() {
	if p.playCmd != nil && p.playCmd.Process != nil {
		p.playCmd.Process.Kill()
	}
	p.playCmd = nil

	wasPlaying := p.isPlaying
	p.isPlaying = false
	p.playButton.SetIcon(theme.MediaPlayIcon())
	p.stopButton.Disable()
	if wasPlaying {
		p.statusLabel.SetText("Stopped: " + p.label)
	}
}

func (p *AudioPlayer) startPlayback() error {
	cmd, err := playerCommand(runtime.GOOS, p.audioFile, exec.LookPath)
	if err != nil {
		return err
	}
	p.playCmd = cmd

	go func() {
		err := cmd.Run()
		if err == nil {
			fyne.Do(func() {
				if p.playCmd != cmd {
					return
				}
				p.isPlaying = false
				p.playCmd = nil
				p.playButton.SetIcon(theme.MediaPlayIcon())
				p.stopButton.Disable()
				p.statusLabel.SetText("Finished: " + p.label)
			})
		}
	}()

	return nil
}

// playerCommand picks the first available audio player for the platform.
func playerCommand(goos, file string, lookPath func(string) (string, error)) (*exec.Cmd, error) {
	switch goos {
	case "darwin":
		return exec.Command("afplay", file), nil
	case "linux":
		candidates := []struct {
			name string
			args []string
		}{
			{"ffplay", []string{"-nodisp", "-autoexit", "-loglevel", "quiet", file}},
			{"mpg123", []string{"-q", file}},
			{"play", []string{"-q", file}},
			{"paplay", []string{file}},
			{"aplay", []string{"-q", file}},
		}
		for _, c := range candidates {
			if c.name == "mpg123" && filepath.Ext(file) != ".mp3" {
				continue
			}
			if _, err := lookPath(c.name); err == nil {
				return exec.Command(c.name, c.args...), nil
			}
		}
		return nil, fmt.Errorf("no audio player found. Install ffplay, mpg123, sox, paplay, or aplay")
	case "windows":
		return exec.Command("cmd", "/c", "start", "/min", file), nil
	default:
		return nil, fmt.Errorf("unsupported platform: %s", goos)
	}
}

func clipLabel(district dialect.District) string {
	if district == "" {
		return "speech"
	}
	return district.String() + " speech"
}
