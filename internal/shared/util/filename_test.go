package util

import (
	"regexp"
	"testing"
	"time"
)

func TestUniqueFileNameFormat(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	got := UniqueFileName("resume", "My CV.PDF", now)

	pattern := regexp.MustCompile(`^resume-1700000000123-\d{1,9}\.pdf$`)
	if !pattern.MatchString(got) {
		t.Fatalf("unexpected file name %q", got)
	}
}

func TestUniqueFileNameDiffersPerCall(t *testing.T) {
	now := time.Now()
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		seen[UniqueFileName("resume", "a.docx", now)] = true
	}
	if len(seen) < 2 {
		t.Fatalf("expected random suffix to vary, got %v", seen)
	}
}

func TestUniqueFileNameWithoutExtension(t *testing.T) {
	got := UniqueFileName("", "noext", time.UnixMilli(5))
	if !regexp.MustCompile(`^file-5-\d+$`).MatchString(got) {
		t.Fatalf("unexpected file name %q", got)
	}
}

func TestCleanBaseName(t *testing.T) {
	cases := map[string]string{
		" roasted/resume ": "roasted_resume",
		`C:\cv`:            "C__cv",
		"a\r\nb":           "a__b",
		`say "hi"`:         "say _hi_",
		"Jane Doe":         "Jane Doe",
	}
	for in, want := range cases {
		got, ok := CleanBaseName(in)
		if !ok || got != want {
			t.Fatalf("CleanBaseName(%q) = %q, %v; want %q", in, got, ok, want)
		}
	}
	for _, in := range []string{"../etc/passwd", "   ", ""} {
		if _, ok := CleanBaseName(in); ok {
			t.Fatalf("expected %q to be refused", in)
		}
	}
}
