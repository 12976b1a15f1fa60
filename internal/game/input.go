package game

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// Key is a single keypress as the engine sees it.
type Key struct {
	Code tcell.Key
	Rune rune
}

// KeyFromEvent converts a terminal key event.
func KeyFromEvent(ev *tcell.EventKey) Key {
	return Key{Code: ev.Key(), Rune: ev.Rune()}
}

// RuneKey is a shorthand for a printable key.
func RuneKey(r rune) *Key {
	return &Key{Code: tcell.KeyRune, Rune: r}
}

// SpecialKey is a shorthand for a non-printable key.
func SpecialKey(code tcell.Key) *Key {
	return &Key{Code: code}
}

// direction returns the movement delta bound to the key. Digits stand in for
// the numeric keypad.
func (k Key) direction() (dx, dy int, ok bool) {
	switch k.Code {
	case tcell.KeyLeft:
		return -1, 0, true
	case tcell.KeyRight:
		return 1, 0, true
	case tcell.KeyUp:
		return 0, -1, true
	case tcell.KeyDown:
		return 0, 1, true
	case tcell.KeyRune:
	default:
		return 0, 0, false
	}

	switch unicode.ToLower(k.Rune) {
	case '4', 'a':
		return -1, 0, true
	case '6', 'd':
		return 1, 0, true
	case '8', 'w':
		return 0, -1, true
	case '2', 's':
		return 0, 1, true
	case '9', 'e':
		return 1, -1, true
	case '7', 'q':
		return -1, -1, true
	case '3', 'c':
		return 1, 1, true
	case '1', 'y':
		return -1, 1, true
	}
	return 0, 0, false
}

// menuResult is what a keypress did to an open menu.
type menuResult int

const (
	menuNoResponse menuResult = iota
	menuCancel
	menuSelected
)

// menuInput maps a key onto a menu of count lettered options.
func menuInput(key *Key, count int) (menuResult, int) {
	if key == nil {
		return menuNoResponse, 0
	}
	switch key.Code {
	case tcell.KeyEscape:
		return menuCancel, 0
	case tcell.KeyRune:
		r := unicode.ToLower(key.Rune)
		if r < 'a' || r > 'z' {
			return menuNoResponse, 0
		}
		if idx := int(r - 'a'); idx < count {
			return menuSelected, idx
		}
	}
	return menuNoResponse, 0
}
