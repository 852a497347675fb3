package util

import "testing"

func TestPreviewTruncatesAtRuneBoundary(t *testing.T) {
	in := "אבג דהו זחט"
	out := Preview(in, 7)
	if out != "אבג דהו..." {
		t.Fatalf("unexpected preview: %q", out)
	}
}

func TestPreviewCollapsesWhitespace(t *testing.T) {
	out := Preview("a\n\n  b\tc", 200)
	if out != "a b c" {
		t.Fatalf("unexpected preview: %q", out)
	}
}

func TestPreviewShortTextUntouched(t *testing.T) {
	if got := Preview("hello", 200); got != "hello" {
		t.Fatalf("unexpected preview: %q", got)
	}
}
