package ui

import "github.com/crazywolf132/termchroma"

var (
	green  string
	red    string
	yellow string
	gray   string

	bold  = termchroma.Bold
	reset = termchroma.Reset
)

func init() {
	green, _ = termchroma.ANSIForeground("#98C379")
	red, _ = termchroma.ANSIForeground("#FF707E")
	yellow, _ = termchroma.ANSIForeground("#FFC402")
	gray, _ = termchroma.ANSIForeground("#6B737C")
}

// Colors for plain (non-TUI) output.
func Green(s string) string  { return green + s + reset }
func Red(s string) string    { return red + s + reset }
func Yellow(s string) string { return yellow + s + reset }
func Gray(s string) string   { return gray + s + reset }
func Bold(s string) string   { return bold + s + reset }

// DisableColors blanks every escape sequence so output stays plain text.
// Honors the NO_COLOR convention.
func DisableColors() {
	green, red, yellow, gray = "", "", "", ""
	bold, reset = "", ""
}
