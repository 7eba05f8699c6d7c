package core

import "strings"

// Key codes share their values with GLFW so the platform layer can pass
// them straight through.
const (
	KeySpace     = 32
	Key0         = 48
	KeyA         = 65
	KeyD         = 68
	KeyE         = 69
	KeyO         = 79
	KeyP         = 80
	KeyQ         = 81
	KeyS         = 83
	KeyW         = 87
	KeyEscape    = 256
	KeyEnter     = 257
	KeyTab       = 258
	KeyBackspace = 259
	KeyRight     = 262
	KeyLeft      = 263
	KeyDown      = 264
	KeyUp        = 265
	KeyPageUp    = 266
	KeyPageDown  = 267
	KeyF1        = 290
	KeyLastCode  = 348
)

// KeyByName resolves a key name as written in config files ("W", "tab",
// "escape"). Single letters and digits map to their codes directly.
func KeyByName(name string) (int, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if len(name) == 1 {
		c := name[0]
		switch {
		case c >= 'a' && c <= 'z':
			return KeyA + int(c-'a'), true
		case c >= '0' && c <= '9':
			return Key0 + int(c-'0'), true
		}
	}
	if len(name) == 2 && name[0] == 'f' && name[1] >= '1' && name[1] <= '9' {
		return KeyF1 + int(name[1]-'1'), true
	}
	key, ok := namedKeys[name]
	return key, ok
}

var namedKeys = map[string]int{
	"space":     KeySpace,
	"tab":       KeyTab,
	"escape":    KeyEscape,
	"esc":       KeyEscape,
	"enter":     KeyEnter,
	"backspace": KeyBackspace,
	"up":        KeyUp,
	"down":      KeyDown,
	"left":      KeyLeft,
	"right":     KeyRight,
	"pageup":    KeyPageUp,
	"pagedown":  KeyPageDown,
}
