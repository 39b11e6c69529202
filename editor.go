package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/fivemoreminix/pyedit/ui"
	"github.com/fivemoreminix/pyedit/ui/buffer"
)

// editor is a single TextEdit with a status bar on the last row.
type editor struct {
	screen      tcell.Screen
	textEdit    *ui.TextEdit
	clipboard   *Clipboard
	colorscheme buffer.Colorscheme
	theme       ui.Theme

	message      string // Shown in place of the file name until the next key
	messageError bool
	confirmQuit  bool
}

func runEditor(a *app, path string) error {
	var contents []byte
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return errors.Wrapf(err, "opening %s", path)
		}
		contents = data
	}

	s, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "creating screen")
	}
	if err := s.Init(); err != nil {
		return errors.Wrap(err, "initializing screen")
	}
	defer s.Fini() // Useful for handling panics

	e, err := newEditor(s, a.cfg, path, contents, NewClipboard(ClipExternal))
	if err != nil {
		return err
	}
	if _, err := os.Stat(a.configPath()); err == nil {
		WatchConfig(a.viper, s)
	}
	e.run()
	return nil
}

func newEditor(s tcell.Screen, cfg Config, path string, contents []byte, clip *Clipboard) (*editor, error) {
	colorscheme, err := cfg.Colorscheme()
	if err != nil {
		return nil, err
	}
	e := &editor{
		screen:      s,
		clipboard:   clip,
		colorscheme: colorscheme,
		theme:       ui.DefaultTheme,
	}
	e.textEdit = ui.NewTextEdit(&e.screen, path, contents, languages.ForPath(path), &e.colorscheme, &e.theme)
	cfg.Apply(e.textEdit)
	e.textEdit.SetFocused(true)
	e.layout()

	lang := "plain text"
	if e.textEdit.Support != nil {
		lang = e.textEdit.Support.Language.Name()
	}
	logrus.WithFields(logrus.Fields{"file": path, "language": lang}).Info("editor started")
	return e, nil
}

func (e *editor) layout() {
	width, height := e.screen.Size()
	e.textEdit.SetPos(0, 0)
	e.textEdit.SetSize(width, max(height-1, 0))
}

func (e *editor) run() {
	for {
		e.draw()
		if quit := e.handle(e.screen.PollEvent()); quit {
			return
		}
	}
}

func (e *editor) draw() {
	e.screen.Clear()
	e.textEdit.Draw(e.screen)
	e.drawStatusBar()
	e.screen.Show()
}

func (e *editor) drawStatusBar() {
	width, height := e.screen.Size()
	y := height - 1
	style := e.theme.GetOrDefault("StatusBar")
	if e.messageError {
		style = e.theme.GetOrDefault("StatusBarError")
	}
	ui.DrawRect(e.screen, 0, y, width, 1, ' ', style)

	left := e.message
	if left == "" {
		left = e.title()
	}
	ui.DrawStr(e.screen, 1, y, left, style)

	line, col := e.textEdit.GetCursor().GetLineCol()
	right := fmt.Sprintf("%d:%d", line+1, col+1)
	ui.DrawStr(e.screen, width-runewidth.StringWidth(right)-1, y, right, style)
}

// title is the status bar text: the file name, whether it is modified and its
// language.
func (e *editor) title() string {
	name := "[new file]"
	if e.textEdit.FilePath != "" {
		name = filepath.Base(e.textEdit.FilePath)
	}
	if e.textEdit.Dirty {
		name += " *"
	}
	lang := "Plain Text"
	if e.textEdit.Support != nil {
		lang = e.textEdit.Support.Language.Name()
	}
	return name + " - " + lang
}

func (e *editor) setMessage(msg string, isError bool) {
	e.message, e.messageError = msg, isError
}

// handle processes one event and reports whether the editor should exit.
func (e *editor) handle(event tcell.Event) bool {
	switch ev := event.(type) {
	case *tcell.EventResize:
		e.layout()
		e.screen.Sync() // Redraw everything
	case *configReloaded:
		e.reload(ev)
	case *tcell.EventKey:
		e.setMessage("", false)
		if ev.Key() != tcell.KeyCtrlQ {
			e.confirmQuit = false
		}
		switch ev.Key() {
		case tcell.KeyCtrlQ:
			if e.textEdit.Dirty && !e.confirmQuit {
				e.confirmQuit = true
				e.setMessage("Unsaved changes. Press Ctrl+Q again to quit.", true)
				return false
			}
			return true
		case tcell.KeyCtrlS:
			if err := e.save(); err != nil {
				logrus.WithError(err).Error("save failed")
				e.setMessage(err.Error(), true)
			}
		case tcell.KeyCtrlC:
			e.copyLine(false)
		case tcell.KeyCtrlX:
			e.copyLine(true)
		case tcell.KeyCtrlV:
			e.paste()
		default:
			e.textEdit.HandleEvent(ev)
		}
	}
	return false
}

func (e *editor) reload(ev *configReloaded) {
	if ev.err != nil {
		logrus.WithError(ev.err).Warn("ignoring config change")
		e.setMessage(ev.err.Error(), true)
		return
	}
	colorscheme, err := ev.cfg.Colorscheme()
	if err != nil {
		e.setMessage(err.Error(), true)
		return
	}
	e.colorscheme = colorscheme
	ev.cfg.Apply(e.textEdit)
	e.textEdit.ScrollToCursor()
	e.setMessage("Config reloaded", false)
}

// save writes the buffer to its file. Files are only ever created by saving.
func (e *editor) save() error {
	path := e.textEdit.FilePath
	if path == "" {
		return errors.New("no file name: start pyedit with a path to save")
	}
	var buf bytes.Buffer
	if _, err := e.textEdit.Buffer.WriteTo(&buf); err != nil {
		return errors.Wrap(err, "saving")
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	e.textEdit.Dirty = false
	e.setMessage(fmt.Sprintf("Wrote %d bytes to %s", buf.Len(), filepath.Base(path)), false)
	logrus.WithFields(logrus.Fields{"file": path, "bytes": buf.Len()}).Info("saved")
	return nil
}

// copyLine puts the cursor's line on the clipboard, removing it when cut is set.
func (e *editor) copyLine(cut bool) {
	line := e.textEdit.CurrentLine() + e.textEdit.GetLineDelimiter()
	if err := e.clipboard.Write(line); err != nil {
		logrus.WithError(err).Warn("clipboard write failed")
		e.setMessage("Could not write to the clipboard", true)
		return
	}
	if cut {
		e.textEdit.DeleteLine()
	}
}

func (e *editor) paste() {
	contents, err := e.clipboard.Read()
	if err != nil {
		logrus.WithError(err).Warn("clipboard read failed")
		e.setMessage("Could not read the clipboard", true)
		return
	}
	e.textEdit.Insert(contents)
}
