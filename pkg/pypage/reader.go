package pypage

import (
	"bufio"
	"io"
	"strings"
)

// readLines splits a document into lines, each keeping its trailing newline.
// Newline preservation matters: literal segments are reassembled by plain
// concatenation, so the split must be lossless.
func readLines(r io.Reader) ([]string, error) {
	br := bufio.NewReader(r)
	var lines []string
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			lines = append(lines, line)
		}
		if err == io.EOF {
			return lines, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// splitLines is readLines over an in-memory string, for callers that
// already hold the full document.
func splitLines(s string) []string {
	lines, _ := readLines(strings.NewReader(s))
	return lines
}
