package pypage

import "strings"

// SegmentKind distinguishes literal text from embedded code
type SegmentKind int

const (
	SegmentLiteral SegmentKind = iota
	SegmentCode
)

func (k SegmentKind) String() string {
	switch k {
	case SegmentLiteral:
		return "literal"
	case SegmentCode:
		return "code"
	default:
		return "unknown"
	}
}

// Segment is one unit of a scanned document: either a run of literal text,
// or the source of an embedded script together with its placement metadata.
type Segment struct {
	Kind SegmentKind
	// Text is the literal text, or the script source with the block
	// indentation already stripped from each line.
	Text string
	// Indent is the number of leading columns stripped from a block
	// segment's lines; inline segments always have 0.
	Indent int
	// Ordinal is this segment's index among all code segments in the
	// document, 0-based in scanning order. -1 for literals.
	Ordinal int
}

// Document is the ordered segment sequence produced by scanning.
// Order is document order and is load-bearing: reassembly replays segments
// in this order, so a document without code segments round-trips unchanged.
type Document struct {
	Segments []Segment
	numCode  int
}

// CodeSegments returns the code segments in ordinal order.
func (d *Document) CodeSegments() []Segment {
	code := make([]Segment, 0, d.numCode)
	for _, seg := range d.Segments {
		if seg.Kind == SegmentCode {
			code = append(code, seg)
		}
	}
	return code
}

// CodeCount returns the number of code segments in the document.
func (d *Document) CodeCount() int {
	return d.numCode
}

// Source reconstructs the literal portion of the document, substituting
// nothing. Used for debugging and analysis.
func (d *Document) Source() string {
	var sb strings.Builder
	for _, seg := range d.Segments {
		if seg.Kind == SegmentLiteral {
			sb.WriteString(seg.Text)
		}
	}
	return sb.String()
}
