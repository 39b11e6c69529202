package ui

import (
	"github.com/gdamore/tcell/v2"
)

// A Component is a view the editor lays out on the screen. After constructing
// one, call SetPos() and SetSize() to give it the rectangle it draws in; the
// editor does so again on every resize.
type Component interface {
	Draw(tcell.Screen)
	// Only a focused component shows the terminal cursor.
	SetFocused(bool)

	GetPos() (x, y int)
	SetPos(x, y int)
	GetSize() (w, h int)
	SetSize(w, h int)

	// HandleEvent returns whether the event was handled.
	HandleEvent(tcell.Event) bool
}

// baseComponent holds the rectangle and focus of a Component. SetFocused is
// left to the embedding type, which knows how to place the cursor.
type baseComponent struct {
	focused       bool
	x, y          int
	width, height int
}

func (c *baseComponent) GetPos() (int, int) {
	return c.x, c.y
}

func (c *baseComponent) SetPos(x, y int) {
	c.x, c.y = x, y
}

func (c *baseComponent) GetSize() (int, int) {
	return c.width, c.height
}

func (c *baseComponent) SetSize(width, height int) {
	c.width, c.height = max(width, 0), max(height, 0)
}
