package core

// Color is the foreground color of a screen cell as an ANSI 256-color code.
// The zero value leaves the terminal's default color in place.
type Color uint8

// Named colors used by the board views and the preview chrome.
const (
	ColorDefault Color = 0
	ColorFlash   Color = 231 // Bright white, cleared rows
	ColorDim     Color = 238
	ColorFrame   Color = 240
	ColorHint    Color = 245
	ColorText    Color = 252
	ColorAccent  Color = 214
)
