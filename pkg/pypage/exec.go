package pypage

import (
	"fmt"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// fileOptions configures the Starlark dialect for embedded scripts.
// Top-level control flow and global reassignment are required: block code is
// ordinary top-level statements, and later sections rebind names introduced
// by earlier ones.
var fileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
	GlobalReassign:  true,
	Recursion:       true,
}

// program is the shared program context for a single render: the code
// segments in ordinal order and one output buffer per segment. The write
// and __section__ builtins are closures over this value, so no state
// escapes the render that created it.
type program struct {
	sections []Segment
	buffers  []strings.Builder
	cursor   int
}

func newProgram(sections []Segment) *program {
	return &program{
		sections: sections,
		buffers:  make([]strings.Builder, len(sections)),
	}
}

// source assembles the shared program text: each section's code preceded by
// a directive moving the section cursor to its ordinal. Evaluating the
// result as one file is what gives sections their shared scope.
func (p *program) source() string {
	var sb strings.Builder
	for _, seg := range p.sections {
		fmt.Fprintf(&sb, "__section__(%d)\n", seg.Ordinal)
		sb.WriteString(seg.Text)
		if !strings.HasSuffix(seg.Text, "\n") {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// setSection implements the __section__ directive emitted between sections.
func (p *program) setSection(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var n int
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &n); err != nil {
		return nil, err
	}
	if n < 0 || n >= len(p.buffers) {
		return nil, fmt.Errorf("%s: section %d out of range", b.Name(), n)
	}
	p.cursor = n
	return starlark.None, nil
}

// write implements the output primitive available to embedded code: it
// appends the string form of its argument to the current section's buffer.
func (p *program) write(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var v starlark.Value
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &v); err != nil {
		return nil, err
	}
	p.buffers[p.cursor].WriteString(stringify(v))
	return starlark.None, nil
}

// stringify renders a Starlark value the way Python's str() would for the
// common cases: strings unquoted, everything else via its display form.
func stringify(v starlark.Value) string {
	if s, ok := starlark.AsString(v); ok {
		return s
	}
	return v.String()
}

// run evaluates the shared program exactly once in a fresh namespace.
// A failure is returned unchanged and leaves no usable output: sections
// share one program and one failure domain.
func (p *program) run(name string) error {
	logger := GetLogger()

	src := p.source()
	if logger.IsDebugMode() {
		logger.WithFields(Fields{
			"sections":       len(p.sections),
			"program_length": len(src),
		}).Debug("Evaluating shared program")
	}

	predeclared := starlark.StringDict{
		"write":       starlark.NewBuiltin("write", p.write),
		"__section__": starlark.NewBuiltin("__section__", p.setSection),
	}
	thread := &starlark.Thread{Name: "pypage:" + name}
	_, err := starlark.ExecFileOptions(fileOptions, thread, name, src, predeclared)
	return err
}

// outputs finalizes the buffers: every line of every buffer is re-indented
// to its section's recorded indentation level, blank lines included.
func (p *program) outputs() []string {
	out := make([]string, len(p.sections))
	for i, seg := range p.sections {
		out[i] = reindent(p.buffers[i].String(), seg.Indent)
	}
	return out
}

func reindent(text string, indent int) string {
	if indent == 0 {
		return text
	}
	pad := strings.Repeat(" ", indent)
	parts := strings.Split(text, "\n")
	for i, part := range parts {
		parts[i] = pad + part
	}
	return strings.Join(parts, "\n")
}

// evaluateDocument runs a document's code segments as one shared program
// and returns the finished per-ordinal outputs. A document with no code
// segments evaluates to nothing, trivially preserving identity.
func evaluateDocument(doc *Document, name string) ([]string, error) {
	if doc.CodeCount() == 0 {
		return nil, nil
	}
	prog := newProgram(doc.CodeSegments())
	if err := prog.run(name); err != nil {
		return nil, err
	}
	return prog.outputs(), nil
}
