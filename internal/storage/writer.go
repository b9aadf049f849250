package storage

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// WriteLines writes the header followed by one line per record.
func WriteLines(w io.Writer, header string, lines []string) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintln(bw, header); err != nil {
		return err
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(bw, line); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// ReadLines calls fn for every line of r without the line terminator. Lines
// have no length limit.
func ReadLines(r io.Reader, fn func(line string) error) error {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
			if fnErr := fn(line); fnErr != nil {
				return fnErr
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
