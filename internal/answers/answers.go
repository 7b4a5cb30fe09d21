// Package answers reads answer sets from files and command-line pairs.
package answers

import (
	"crypto/sha256"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dshills/healthcheck/internal/audit"
	"gopkg.in/yaml.v3"
)

// File holds a loaded answers file with its content hash.
type File struct {
	FilePath string
	Answers  audit.AnswerSet
	Hash     string
}

// Load reads an answers file. YAML and JSON are both accepted; the document
// is either a bare mapping of question ID to option index or has that
// mapping under an "answers" key.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("answers.Load: %w", err)
	}
	set, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("answers.Load: %s: %w", path, err)
	}
	h := sha256.Sum256(data)
	return &File{
		FilePath: path,
		Answers:  set,
		Hash:     fmt.Sprintf("sha256:%x", h),
	}, nil
}

// Decode parses an answers document.
func Decode(data []byte) (audit.AnswerSet, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	set := audit.AnswerSet{}
	if len(doc.Content) == 0 {
		return set, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected a mapping", root.Line)
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value == "answers" {
			root = root.Content[i+1]
			break
		}
	}
	if root.Kind == yaml.ScalarNode && root.Tag == "!!null" {
		return set, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: answers must be a mapping", root.Line)
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		k, v := root.Content[i], root.Content[i+1]
		id, err := strconv.Atoi(strings.TrimSpace(k.Value))
		if err != nil {
			return nil, fmt.Errorf("line %d: question ID %q is not an integer", k.Line, k.Value)
		}
		if v.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: answer for question %d must be an option index", v.Line, id)
		}
		idx, err := strconv.Atoi(strings.TrimSpace(v.Value))
		if err != nil {
			return nil, fmt.Errorf("line %d: option index %q is not an integer", v.Line, v.Value)
		}
		if _, dup := set[id]; dup {
			return nil, fmt.Errorf("line %d: duplicate answer for question %d", k.Line, id)
		}
		set[id] = idx
	}
	return set, nil
}

// Parse reads "id=index" pairs, as given to repeated --answer flags.
func Parse(pairs []string) (audit.AnswerSet, error) {
	set := audit.AnswerSet{}
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("answers.Parse: %q: expected id=index", pair)
		}
		id, err := strconv.Atoi(strings.TrimSpace(k))
		if err != nil {
			return nil, fmt.Errorf("answers.Parse: %q: question ID is not an integer", pair)
		}
		idx, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("answers.Parse: %q: option index is not an integer", pair)
		}
		if _, dup := set[id]; dup {
			return nil, fmt.Errorf("answers.Parse: duplicate answer for question %d", id)
		}
		set[id] = idx
	}
	return set, nil
}

// Merge returns a new set holding base with override's entries on top.
func Merge(base, override audit.AnswerSet) audit.AnswerSet {
	out := make(audit.AnswerSet, len(base)+len(override))
	for id, idx := range base {
		out[id] = idx
	}
	for id, idx := range override {
		out[id] = idx
	}
	return out
}
