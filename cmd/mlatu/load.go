package main

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/mlatu-lang/mlatu"
)

// loadFile reads a rule file. Files ending in .mlb hold the binary rule
// format; everything else is parsed as source text.
func loadFile(path string) ([]mlatu.Rule, error) {
	if filepath.Ext(path) == ".mlb" {
		return loadBinaryFile(path)
	}
	return loadTextFile(path)
}

func loadTextFile(path string) ([]mlatu.Rule, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if !utf8.Valid(b) {
		return nil, &mlatu.DecodeError{Filename: path}
	}
	rules, err := mlatu.Rules(string(b))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return rules, nil
}

func loadBinaryFile(path string) ([]mlatu.Rule, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	rules, ok := mlatu.DeserializeRules(b)
	if !ok {
		return nil, &mlatu.DecodeError{Filename: path}
	}
	return rules, nil
}

// loadAll concatenates the rules of every given file, in argument order.
func loadAll(paths []string) ([]mlatu.Rule, error) {
	var rules []mlatu.Rule
	for _, path := range paths {
		rs, err := loadFile(path)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rs...)
	}
	return rules, nil
}
