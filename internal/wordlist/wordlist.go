// Package wordlist loads the dictionary the generator samples from.
package wordlist

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
)

//go:embed words.txt
var builtinWords []byte

// Builtin returns the embedded dictionary used when no path is configured.
func Builtin() []string {
	words, err := readWords(bytes.NewReader(builtinWords))
	if err != nil || len(words) == 0 {
		// The embedded list is validated by tests; this path is unreachable
		// short of a corrupted binary.
		return []string{"the"}
	}
	return words
}

// LoadWords reads one word per line from the provided file path.
func LoadWords(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()

	words, err := readWords(file)
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("word list is empty")
	}
	return words, nil
}

func readWords(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}
