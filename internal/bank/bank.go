// Package bank loads question banks: the embedded built-ins and custom bank
// files in YAML, JSON, or TOML.
package bank

import (
	"crypto/sha256"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/dshills/healthcheck/internal/audit"
	"gopkg.in/yaml.v3"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// DefaultName is the built-in bank used when none is configured.
const DefaultName = "xero"

// LoadBuiltin loads a built-in bank by name.
func LoadBuiltin(name string) (*audit.Bank, error) {
	data, err := builtinFS.ReadFile("builtin/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("bank.LoadBuiltin: unknown bank %q: %w", name, err)
	}
	var b audit.Bank
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("bank.LoadBuiltin: parse %q: %w", name, err)
	}
	return &b, nil
}

// List returns the names of all built-in banks, sorted.
func List() ([]string, error) {
	entries, err := builtinFS.ReadDir("builtin")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		n := e.Name()
		if strings.HasSuffix(n, ".yaml") {
			names = append(names, strings.TrimSuffix(n, ".yaml"))
		}
	}
	sort.Strings(names)
	return names, nil
}

// Load reads a bank file. The decoder is picked by extension.
func Load(path string) (*audit.Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("bank.Load: %w", err)
	}
	b, err := Decode(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("bank.Load: %s: %w", path, err)
	}
	return b, nil
}

// Decode parses bank data in the format named by ext (".yaml", ".yml",
// ".json" or ".toml").
func Decode(data []byte, ext string) (*audit.Bank, error) {
	var b audit.Bank
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &b); err != nil {
			return nil, err
		}
	case ".json":
		if err := json.Unmarshal(data, &b); err != nil {
			return nil, err
		}
	case ".toml":
		if err := toml.Unmarshal(data, &b); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported bank format %q", ext)
	}
	return &b, nil
}

// Resolve loads ref as a file when it looks like a path and as a built-in
// name otherwise.
func Resolve(ref string) (*audit.Bank, error) {
	if ref == "" {
		ref = DefaultName
	}
	if isPath(ref) {
		return Load(ref)
	}
	return LoadBuiltin(ref)
}

func isPath(ref string) bool {
	if strings.ContainsRune(ref, '/') || strings.ContainsRune(ref, filepath.Separator) {
		return true
	}
	switch strings.ToLower(filepath.Ext(ref)) {
	case ".yaml", ".yml", ".json", ".toml":
		return true
	}
	return false
}

// Hash returns a digest of the bank's canonical JSON encoding, so the same
// bank hashes the same whichever format it was loaded from.
func Hash(b *audit.Bank) (string, error) {
	data, err := json.Marshal(b)
	if err != nil {
		return "", fmt.Errorf("bank.Hash: %w", err)
	}
	return fmt.Sprintf("sha256:%x", sha256.Sum256(data)), nil
}

// FormatText renders the bank as a numbered plain-text listing.
func FormatText(b *audit.Bank) string {
	var sb strings.Builder

	title := b.Title
	if title == "" {
		title = b.Name
	}
	fmt.Fprintf(&sb, "%s (%s v%d)\n", title, b.Name, b.Version)
	if b.Description != "" {
		fmt.Fprintf(&sb, "%s\n", strings.TrimSpace(b.Description))
	}
	sb.WriteString("\n")

	for _, q := range b.Questions {
		fmt.Fprintf(&sb, "Q%d. %s\n", q.ID, q.Text)
		for i, opt := range q.Options {
			tag := fmt.Sprintf("%d pts", opt.Points)
			if opt.NA {
				tag = "n/a"
			}
			fmt.Fprintf(&sb, "  %d) %s [%s]\n", i+1, opt.Text, tag)
		}
		sb.WriteString("\n")
	}

	if len(b.Tiers) > 0 {
		sb.WriteString("Tiers:\n")
		lower := 0
		for _, t := range b.Tiers {
			if t.Below > 0 {
				fmt.Fprintf(&sb, "  %3d-%3d%%  %s\n", lower, t.Below-1, t.Title)
				lower = t.Below
			} else {
				fmt.Fprintf(&sb, "  %3d-100%%  %s\n", lower, t.Title)
			}
		}
	}

	return sb.String()
}
