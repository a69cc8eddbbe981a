package pypage

import "strings"

// assemble walks the original segment sequence in order, copying literals
// through unchanged and substituting each code segment's finished output.
// With no code segments the result is byte-identical to the input.
func assemble(doc *Document, outputs []string) string {
	var sb strings.Builder
	for _, seg := range doc.Segments {
		if seg.Kind == SegmentCode {
			sb.WriteString(outputs[seg.Ordinal])
		} else {
			sb.WriteString(seg.Text)
		}
	}
	return sb.String()
}

// renderDocument runs one full render: evaluate, then splice. Rendering is
// all-or-nothing; an evaluation failure returns no partial text.
func renderDocument(doc *Document, name string) (string, error) {
	outputs, err := evaluateDocument(doc, name)
	if err != nil {
		return "", err
	}
	return assemble(doc, outputs), nil
}
