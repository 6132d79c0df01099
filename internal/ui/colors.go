package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var styles = DarkPalette()

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title lipgloss.Style
	ok    lipgloss.Style
	err   lipgloss.Style
	warn  lipgloss.Style
	help  lipgloss.Style
}

func NewPalette(t, s, e, w, h string) *Palette {
	return &Palette{
		title: NewBold(t).MarginBottom(1),
		ok:    NewBold(s),
		err:   NewBold(e),
		warn:  NewStyle(w),
		help:  NewEm(h),
	}
}

// DarkPalette suits dark terminal backgrounds.
func DarkPalette() *Palette {
	return NewPalette("#7D56F4", "#04B575", "#FF5F56", "#FFA500", "#626262")
}

// LightPalette suits light terminal backgrounds.
func LightPalette() *Palette {
	return NewPalette("#5A3EC8", "#02804F", "#C0392B", "#B9770E", "#8A8A8A")
}

// UsePalette switches the active palette to match the stored dark mode
// preference.
func UsePalette(dark bool) {
	if dark {
		styles = DarkPalette()
	} else {
		styles = LightPalette()
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}
