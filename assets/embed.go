// assets/embed.go
//
// Build-time assets for the go-server:
//   - words.txt:  the fixed source set of the word queue.
//   - schema.sql: DDL for the finished-round board.
package assets

import (
	"bufio"
	"embed"
	"strings"
)

//go:embed words.txt schema.sql
var FS embed.FS

func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToLower(s))
	}
	return out, sc.Err()
}

// WordList returns the embedded source words in file order.
func WordList() ([]string, error) {
	return readLines("words.txt")
}

// Schema returns the board DDL.
func Schema() (string, error) {
	b, err := FS.ReadFile("schema.sql")
	if err != nil {
		return "", err
	}
	return string(b), nil
}
