package project

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Kind identifies what the runtime does with an asset.
type Kind int

const (
	KindScript Kind = iota
	KindTexture
	KindSfx
	KindMusic
	KindFont
)

var kindNames = [...]string{"Script", "Texture", "Sfx", "Music", "Font"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

func (k Kind) MarshalText() ([]byte, error) {
	if k < 0 || int(k) >= len(kindNames) {
		return nil, fmt.Errorf("project: unknown asset kind %d", int(k))
	}
	return []byte(kindNames[k]), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	for i, name := range kindNames {
		if name == string(b) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("project: unknown asset kind %q", string(b))
}

// Strategy says whether the runtime loads an asset from disk or has it
// compiled into the binary.
type Strategy int

const (
	External Strategy = iota
	Embedded
)

func (s Strategy) String() string {
	switch s {
	case External:
		return "External"
	case Embedded:
		return "Embedded"
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

func (s Strategy) MarshalText() ([]byte, error) {
	if s != External && s != Embedded {
		return nil, fmt.Errorf("project: unknown load strategy %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *Strategy) UnmarshalText(b []byte) error {
	switch string(b) {
	case "External":
		*s = External
	case "Embedded":
		*s = Embedded
	default:
		return fmt.Errorf("project: unknown load strategy %q", string(b))
	}
	return nil
}

// ParseStrategy accepts the lower-case names used on the command line.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(s) {
	case "external", "ext":
		return External, nil
	case "embedded", "embed":
		return Embedded, nil
	}
	return External, fmt.Errorf("project: unknown load strategy %q", s)
}

// Allows reports whether assets of kind k may use strategy s. Scripts and
// fonts must always be compiled in.
func (k Kind) Allows(s Strategy) bool {
	if s == External && (k == KindScript || k == KindFont) {
		return false
	}
	return true
}

// Key is the registry's primary key. The same file may be registered once
// per strategy.
type Key struct {
	Path     string
	Strategy Strategy
}

func (k Key) String() string {
	return k.Path + "_" + k.Strategy.String()
}

func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Key) UnmarshalText(b []byte) error {
	s := string(b)
	i := strings.LastIndex(s, "_")
	if i < 0 {
		return fmt.Errorf("project: malformed asset key %q", s)
	}
	var strat Strategy
	if err := strat.UnmarshalText([]byte(s[i+1:])); err != nil {
		return err
	}
	k.Path = s[:i]
	k.Strategy = strat
	return nil
}

// ParseKey parses the "<path>_<Strategy>" form used in config.json.
func ParseKey(s string) (Key, error) {
	var k Key
	err := k.UnmarshalText([]byte(s))
	return k, err
}

// Asset is one declared resource the generated program will load.
type Asset struct {
	Name         string   `json:"name"`
	Path         string   `json:"path"`
	AbsolutePath string   `json:"absolute_path"`
	Kind         Kind     `json:"type_of"`
	Strategy     Strategy `json:"load_type"`
	// LoadOrder is only set for scripts.
	LoadOrder *int `json:"load_order,omitempty"`
}

func (a Asset) Key() Key {
	return Key{Path: a.Path, Strategy: a.Strategy}
}

// KindForPath infers an asset kind from the file extension.
func KindForPath(path string) (Kind, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tengo":
		return KindScript, nil
	case ".png":
		return KindTexture, nil
	case ".wav":
		return KindSfx, nil
	case ".mp3", ".ogg":
		return KindMusic, nil
	case ".ttf":
		return KindFont, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedKind, filepath.Ext(path))
}
