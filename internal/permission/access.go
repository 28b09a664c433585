package permission

import "strings"

// Access is the resolved capability a caller holds on one screen.
// The zero value grants nothing.
type Access uint8

const (
	AccessNone  Access = 0
	AccessRead  Access = 1 << 0
	AccessWrite Access = 1 << 1

	AccessReadWrite = AccessRead | AccessWrite
)

func (a Access) CanRead() bool  { return a&AccessRead != 0 }
func (a Access) CanWrite() bool { return a&AccessWrite != 0 }

func (a Access) String() string {
	switch a {
	case AccessNone:
		return "none"
	case AccessRead:
		return "read"
	case AccessWrite:
		return "write"
	case AccessReadWrite:
		return "read-write"
	}
	return "invalid"
}

// Grant is one (role, screen) permission row reduced to what resolution needs.
type Grant struct {
	ScreenName string
	CanRead    bool
	CanWrite   bool
}

func (g Grant) access() Access {
	var a Access
	if g.CanRead {
		a |= AccessRead
	}
	if g.CanWrite {
		a |= AccessWrite
	}
	return a
}

// Resolve unions every grant that names screen. Screens without a grant
// resolve to AccessNone.
func Resolve(grants []Grant, screen string) Access {
	var a Access
	for _, g := range grants {
		if g.ScreenName == screen {
			a |= g.access()
		}
	}
	return a
}

// Snapshot is the full screen→access map of one caller, resolved once and
// queried many times within a request.
type Snapshot struct {
	byScreen map[string]Access
}

func NewSnapshot(grants []Grant) *Snapshot {
	s := &Snapshot{byScreen: make(map[string]Access, len(grants))}
	for _, g := range grants {
		s.byScreen[g.ScreenName] |= g.access()
	}
	return s
}

func (s *Snapshot) Access(screen string) Access {
	if s == nil {
		return AccessNone
	}
	return s.byScreen[screen]
}

func (s *Snapshot) HasRead(screen string) bool  { return s.Access(screen).CanRead() }
func (s *Snapshot) HasWrite(screen string) bool { return s.Access(screen).CanWrite() }

// Screens returns the screens with any access, for diagnostics.
func (s *Snapshot) Screens() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.byScreen))
	for screen, a := range s.byScreen {
		if a != AccessNone {
			out = append(out, screen)
		}
	}
	return out
}

func normalizeScreen(screen string) string {
	return strings.TrimSpace(screen)
}
