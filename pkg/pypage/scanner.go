package pypage

import (
	"regexp"
	"strings"
)

// Tag delimiters recognized by the scanner.
const (
	blockOpenTag   = "<python>"
	blockCloseTag  = "</python>"
	inlineOpenTag  = "<py>"
	inlineCloseTag = "</py>"
)

var (
	// Block delimiters must occupy their own line: optional leading
	// whitespace, the tag, optional trailing whitespace, a newline.
	reBlockOpen  = regexp.MustCompile(`^\s*` + blockOpenTag + `\s*\n`)
	reBlockClose = regexp.MustCompile(`^\s*` + blockCloseTag + `\s*\n`)
)

// scanner modes: collecting literal text or block code.
const (
	modePlain = iota
	modeCode
)

// scanDocument converts raw lines into the ordered segment sequence.
//
// Two tag syntaxes are handled: <python>...</python> blocks whose opening
// column sets the indentation stripped from every enclosed line, and inline
// <py>...</py> pairs within a single line. At most one inline pair per line
// is recognized; anything after the first closing delimiter, including
// further pairs, stays literal.
//
// When strict is false, a block that is never closed is flushed at end of
// input as literal text (the already de-indented script source), matching
// the legacy contract. When strict is true it is an *UnterminatedBlockError.
func scanDocument(lines []string, strict bool) (*Document, error) {
	logger := GetLogger()
	if logger.IsDebugMode() {
		logger.WithField("line_count", len(lines)).Debug("Starting scan")
	}

	doc := &Document{}

	flushLiteral := func(text string) {
		doc.Segments = append(doc.Segments, Segment{
			Kind:    SegmentLiteral,
			Text:    text,
			Ordinal: -1,
		})
	}
	flushCode := func(text string, indent int) {
		doc.Segments = append(doc.Segments, Segment{
			Kind:    SegmentCode,
			Text:    text,
			Indent:  indent,
			Ordinal: doc.numCode,
		})
		doc.numCode++
	}

	mode := modePlain
	collect := ""
	idLevel := 0
	openLine := 0

	for n, line := range lines {
		inOpen, inClose := inlinePair(line)

		switch {
		case reBlockOpen.MatchString(line):
			flushLiteral(collect)

			// The line already matched the opening-delimiter pattern,
			// so a failed column lookup is a scanner defect.
			col := strings.Index(line, blockOpenTag)
			if col < 0 {
				return nil, NewTagError("opening delimiter vanished from matched line", n+1)
			}
			collect = ""
			idLevel = col
			openLine = n + 1
			mode = modeCode

		case reBlockClose.MatchString(line):
			flushCode(collect, idLevel)
			collect = "\n"
			idLevel = 0
			mode = modePlain

		case inOpen >= 0 && inClose >= 0:
			pre := line[:inOpen]
			code := line[inOpen+len(inlineOpenTag) : inClose]
			post := line[inClose+len(inlineCloseTag):]

			flushLiteral(collect + pre)
			flushCode(code, 0)
			collect = post

		case mode == modePlain:
			collect += line

		default: // modeCode
			if len(line) > idLevel {
				collect += line[idLevel:]
			} else {
				collect += "\n"
			}
		}
	}

	if mode == modeCode && strict {
		return nil, NewUnterminatedBlockError(openLine)
	}

	// Final flush regardless of mode: an unterminated block degrades to
	// literal text at end of input.
	flushLiteral(collect)

	if logger.IsDebugMode() {
		logger.WithFields(Fields{
			"segment_count": len(doc.Segments),
			"code_count":    doc.numCode,
		}).Debug("Scan complete")
	}

	return doc, nil
}

// inlinePair locates the first <py>...</py> pair on a line, returning the
// indexes of the opening and closing delimiters, or -1, -1. The closing
// delimiter is only searched for after the opening one, so a stray close
// before the first open does not form a pair.
func inlinePair(line string) (openIdx, closeIdx int) {
	openIdx = strings.Index(line, inlineOpenTag)
	if openIdx < 0 {
		return -1, -1
	}
	rel := strings.Index(line[openIdx+len(inlineOpenTag):], inlineCloseTag)
	if rel < 0 {
		return -1, -1
	}
	return openIdx, openIdx + len(inlineOpenTag) + rel
}
