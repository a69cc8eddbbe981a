package pypage

import (
	"strings"
	"testing"
)

func TestRenderIdentity(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"plain html", "<html>\n<body>\n<p>Hello</p>\n</body>\n</html>\n"},
		{"empty document", ""},
		{"no trailing newline", "last line"},
		{"blank lines", "a\n\n\nb\n"},
		{"angle brackets without tags", "x < y > z\n<div></div>\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RenderString(tt.input)
			if err != nil {
				t.Fatalf("RenderString() error = %v", err)
			}
			if got != tt.input {
				t.Errorf("RenderString() = %q, want input unchanged %q", got, tt.input)
			}
		})
	}
}

func TestRenderInlineSubstitution(t *testing.T) {
	got, err := RenderString("Hello <py>write(\"World\")</py>!\n")
	if err != nil {
		t.Fatalf("RenderString() error = %v", err)
	}
	if want := "Hello World!\n"; got != want {
		t.Errorf("RenderString() = %q, want %q", got, want)
	}
}

func TestRenderBlockIndentation(t *testing.T) {
	input := "<div>\n" +
		"    <python>\n" +
		"    for i in range(3):\n" +
		"        write(str(i) + \"\\n\")\n" +
		"    </python>\n" +
		"</div>\n"

	got, err := RenderString(input)
	if err != nil {
		t.Fatalf("RenderString() error = %v", err)
	}

	// Each output line carries the block's four-column indentation; the
	// buffer's trailing newline yields an indented blank line before the
	// literal that follows the closing tag.
	want := "<div>\n    0\n    1\n    2\n    \n</div>\n"
	if got != want {
		t.Errorf("RenderString() = %q, want %q", got, want)
	}
}

func TestRenderSharedScope(t *testing.T) {
	input := "<python>\n" +
		"x = \"A\"\n" +
		"</python>\n" +
		"Value: <py>write(x)</py>\n"

	got, err := RenderString(input)
	if err != nil {
		t.Fatalf("RenderString() error = %v", err)
	}
	if want := "\nValue: A\n"; got != want {
		t.Errorf("RenderString() = %q, want %q", got, want)
	}
}

func TestRenderOrderPreservation(t *testing.T) {
	input := "first\n" +
		"<py>write(\"1\")</py>\n" +
		"second\n" +
		"<py>write(\"2\")</py>\n" +
		"third\n" +
		"<py>write(\"3\")</py>\n" +
		"fourth\n"

	got, err := RenderString(input)
	if err != nil {
		t.Fatalf("RenderString() error = %v", err)
	}
	want := "first\n1\nsecond\n2\nthird\n3\nfourth\n"
	if got != want {
		t.Errorf("RenderString() = %q, want %q", got, want)
	}
}

func TestRenderFatalEvaluationFailure(t *testing.T) {
	input := "before\n" +
		"<py>write(\"partial\")</py>\n" +
		"<python>\n" +
		"fail(\"broken\")\n" +
		"</python>\n" +
		"after\n"

	got, err := RenderString(input)
	if err == nil {
		t.Fatal("expected evaluation error")
	}
	if got != "" {
		t.Errorf("expected no partial output, got %q", got)
	}
	if !strings.Contains(err.Error(), "broken") {
		t.Errorf("expected the script's own error to surface, got %v", err)
	}
}

func TestRenderIdempotence(t *testing.T) {
	first, err := RenderString("Hello <py>write(\"World\")</py>!\n")
	if err != nil {
		t.Fatalf("first render error = %v", err)
	}

	second, err := RenderString(first)
	if err != nil {
		t.Fatalf("second render error = %v", err)
	}
	if second != first {
		t.Errorf("re-render changed output: %q -> %q", first, second)
	}
}

func TestRenderMultipleInlineTagsPerLine(t *testing.T) {
	// Only the first pair per line is recognized; the second stays literal.
	got, err := RenderString("a<py>write(\"X\")</py>b<py>write(\"Y\")</py>c\n")
	if err != nil {
		t.Fatalf("RenderString() error = %v", err)
	}
	if want := "aXb<py>write(\"Y\")</py>c\n"; got != want {
		t.Errorf("RenderString() = %q, want %q", got, want)
	}
}

func TestRenderUnterminatedBlockDefault(t *testing.T) {
	got, err := RenderString("a\n  <python>\n  x = 1\n")
	if err != nil {
		t.Fatalf("RenderString() error = %v", err)
	}
	// Legacy contract: the de-indented remainder is emitted as plain text.
	if want := "a\nx = 1\n"; got != want {
		t.Errorf("RenderString() = %q, want %q", got, want)
	}
}

func TestRenderSectionsDoNotReExecute(t *testing.T) {
	input := "<python>\n" +
		"counter = [0]\n" +
		"counter[0] += 1\n" +
		"</python>\n" +
		"<py>write(counter[0])</py>\n"

	got, err := RenderString(input)
	if err != nil {
		t.Fatalf("RenderString() error = %v", err)
	}
	if want := "\n1\n"; got != want {
		t.Errorf("RenderString() = %q, want %q", got, want)
	}
}
