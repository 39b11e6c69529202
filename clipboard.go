package main

import (
	"github.com/sirupsen/logrus"
	"github.com/zyedidia/clipboard"
)

type ClipMethod uint8

const (
	ClipExternal ClipMethod = iota
	ClipInternal
)

// Clipboard holds cut and copied lines. It prefers the system clipboard and
// falls back to an in-memory one when no clipboard tool is available.
type Clipboard struct {
	Method   ClipMethod
	internal string
}

// NewClipboard tries method first, falling back to ClipInternal. The error
// from a failed external clipboard is logged, not returned, since the internal
// one always works.
func NewClipboard(method ClipMethod) *Clipboard {
	c := &Clipboard{Method: ClipInternal}
	if method == ClipExternal {
		if err := clipboard.Initialize(); err != nil {
			logrus.WithError(err).Info("system clipboard unavailable, using internal clipboard")
		} else {
			c.Method = ClipExternal
		}
	}
	return c
}

// Read returns the clipboard contents.
func (c *Clipboard) Read() (string, error) {
	if c.Method == ClipExternal {
		return clipboard.ReadAll("clipboard")
	}
	return c.internal, nil
}

// Write replaces the clipboard contents.
func (c *Clipboard) Write(content string) error {
	if c.Method == ClipExternal {
		return clipboard.WriteAll(content, "clipboard")
	}
	c.internal = content
	return nil
}
