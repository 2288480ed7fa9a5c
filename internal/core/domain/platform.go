package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// Platform is one of the fixed build targets of the dev server.
type Platform int

const (
	// Desktop runs the project natively on the host.
	Desktop Platform = iota
	// IOS builds for the iOS simulator.
	IOS
	// Android builds for an Android emulator.
	Android
	// Web builds static assets served on localhost.
	Web
)

var platformNames = [...]string{"desktop", "ios", "android", "web"}

var platformDisplayNames = [...]string{"Desktop", "iOS", "Android", "Web"}

// Platforms returns every platform in key binding order (1 through 4).
func Platforms() []Platform {
	return []Platform{Desktop, IOS, Android, Web}
}

// ParsePlatform resolves a platform from its name, ignoring case.
func ParsePlatform(name string) (Platform, error) {
	needle := strings.ToLower(strings.TrimSpace(name))
	for i, n := range platformNames {
		if n == needle {
			return Platform(i), nil
		}
	}
	return Desktop, zerr.With(ErrUnknownPlatform, "platform", name)
}

// Valid reports whether p is one of the four known platforms.
func (p Platform) Valid() bool {
	return p >= Desktop && p <= Web
}

func (p Platform) String() string {
	if !p.Valid() {
		return "unknown"
	}
	return platformNames[p]
}

// DisplayName returns the human readable name used in status messages.
func (p Platform) DisplayName() string {
	if !p.Valid() {
		return "Unknown"
	}
	return platformDisplayNames[p]
}

// Key returns the key binding that selects the platform.
func (p Platform) Key() string {
	return string(rune('1' + int(p)))
}

// MarshalText implements encoding.TextMarshaler.
func (p Platform) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Platform) UnmarshalText(text []byte) error {
	parsed, err := ParsePlatform(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
