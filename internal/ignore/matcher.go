// Package ignore decides which windows never get a focus border.
package ignore

import "regexp"

// SystemClasses are shell and desktop-chrome window classes that are always
// exempt, regardless of user patterns.
var SystemClasses = []string{
	"Windows.UI.Core.CoreWindow", // Start menu, search, action center
	"Shell_TrayWnd",              // taskbar
	"Shell_SecondaryTrayWnd",     // taskbar on secondary monitors
	"Progman",                    // desktop
	"WorkerW",                    // desktop background host
}

// Matcher classifies windows by class name and title. It is immutable and
// safe to share.
type Matcher struct {
	system   map[string]struct{}
	patterns []*regexp.Regexp
}

// NewMatcher builds a matcher from already-compiled user patterns. Nil
// entries are skipped.
func NewMatcher(patterns []*regexp.Regexp) *Matcher {
	m := &Matcher{
		system:   make(map[string]struct{}, len(SystemClasses)),
		patterns: make([]*regexp.Regexp, 0, len(patterns)),
	}
	for _, class := range SystemClasses {
		m.system[class] = struct{}{}
	}
	for _, re := range patterns {
		if re != nil {
			m.patterns = append(m.patterns, re)
		}
	}
	return m
}

// IsSystemClass reports whether class is one of the built-in shell classes.
func (m *Matcher) IsSystemClass(class string) bool {
	_, ok := m.system[class]
	return ok
}

// IsExempt reports whether a window with this class and title must not be
// decorated. User patterns are matched against "{title} {class}".
func (m *Matcher) IsExempt(class, title string) bool {
	if m.IsSystemClass(class) {
		return true
	}
	if len(m.patterns) == 0 {
		return false
	}
	subject := title + " " + class
	for _, re := range m.patterns {
		if re.MatchString(subject) {
			return true
		}
	}
	return false
}
