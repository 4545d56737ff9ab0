package ignore

import (
	"regexp"
	"testing"
)

func TestIsExemptSystemClassesAlwaysMatch(t *testing.T) {
	matchers := []*Matcher{
		NewMatcher(nil),
		NewMatcher([]*regexp.Regexp{regexp.MustCompile(`^never$`)}),
	}
	for _, m := range matchers {
		for _, class := range SystemClasses {
			if !m.IsExempt(class, "anything") {
				t.Fatalf("expected system class %q to be exempt", class)
			}
		}
	}
}

func TestIsExemptTaskbar(t *testing.T) {
	m := NewMatcher(nil)
	if !m.IsExempt("Shell_TrayWnd", "") {
		t.Fatalf("expected taskbar to be exempt")
	}
}

func TestIsExemptPatternMatchesTitleAndClass(t *testing.T) {
	m := NewMatcher([]*regexp.Regexp{regexp.MustCompile("Notepad")})

	if !m.IsExempt("Notepad", "untitled - Notepad") {
		t.Fatalf("expected notepad window to be exempt")
	}
	if m.IsExempt("Chrome_WidgetWin_1", "Inbox - Mail") {
		t.Fatalf("expected unrelated window not to be exempt")
	}
}

func TestIsExemptSubjectIsTitleSpaceClass(t *testing.T) {
	m := NewMatcher([]*regexp.Regexp{regexp.MustCompile(`^Terminal ConsoleWindowClass$`)})

	if !m.IsExempt("ConsoleWindowClass", "Terminal") {
		t.Fatalf("expected anchored pattern to match %q", "Terminal ConsoleWindowClass")
	}
	if m.IsExempt("Terminal", "ConsoleWindowClass") {
		t.Fatalf("class and title must not be swapped")
	}
}

func TestIsExemptClassNameMatchesPattern(t *testing.T) {
	m := NewMatcher([]*regexp.Regexp{regexp.MustCompile(`firefox$`)})
	if !m.IsExempt("firefox", "Mozilla Firefox") {
		t.Fatalf("expected class suffix to match")
	}
}

func TestNewMatcherSkipsNilPatterns(t *testing.T) {
	m := NewMatcher([]*regexp.Regexp{nil, regexp.MustCompile("x"), nil})
	if len(m.patterns) != 1 {
		t.Fatalf("expected 1 pattern, got %d", len(m.patterns))
	}
	if m.IsExempt("Foo", "Bar") {
		t.Fatalf("expected no match")
	}
}

func TestIsSystemClassIsExact(t *testing.T) {
	m := NewMatcher(nil)
	if m.IsSystemClass("shell_traywnd") {
		t.Fatalf("system class comparison must be case sensitive")
	}
	if m.IsSystemClass("Shell_TrayWnd2") {
		t.Fatalf("system class comparison must be exact")
	}
}
