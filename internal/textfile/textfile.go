// Package textfile loads prompt paragraphs from plain-text files.
package textfile

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadParagraphs reads blank-line separated paragraphs from path. Lines of
// one paragraph are joined and normalized with Normalize.
func LoadParagraphs(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only text file.
			_ = cerr
		}
	}()

	var paragraphs []string
	var current []string
	flush := func() {
		if p := Normalize(strings.Join(current, " ")); p != "" {
			paragraphs = append(paragraphs, p)
		}
		current = current[:0]
	}
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	flush()
	if len(paragraphs) == 0 {
		return nil, fmt.Errorf("text file is empty")
	}
	return paragraphs, nil
}
