package morph

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// CommandConfig configures the external analyzer process.
type CommandConfig struct {
	// Command is the analyzer executable. Required.
	Command string

	// Args are extra arguments passed on every invocation.
	Args []string

	// UserDictPath, when set, is passed to the analyzer via
	// --user-dict so project-specific (form, tag) entries are
	// recognized as single morphemes.
	UserDictPath string
}

// Validate checks the configuration.
func (c CommandConfig) Validate() error {
	if c.Command == "" {
		return fmt.Errorf("Command is required")
	}
	return nil
}

// CommandTokenizer runs an external morphological analyzer process per
// document: the text goes to stdin, the analyzer answers one
// tab-separated "form<TAB>tag" line per token.
//
// A fresh process per call keeps the tokenizer safe for concurrent use
// without coordinating access to a shared analyzer session.
type CommandTokenizer struct {
	config CommandConfig
}

// NewCommandTokenizer creates a tokenizer backed by an external
// analyzer command.
func NewCommandTokenizer(cfg CommandConfig) (*CommandTokenizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &CommandTokenizer{config: cfg}, nil
}

// Tokenize implements Tokenizer.
func (t *CommandTokenizer) Tokenize(ctx context.Context, text string) ([]Token, error) {
	args := append([]string(nil), t.config.Args...)
	if t.config.UserDictPath != "" {
		args = append(args, "--user-dict", t.config.UserDictPath)
	}

	cmd := exec.CommandContext(ctx, t.config.Command, args...)
	cmd.Stdin = strings.NewReader(text)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("analyzer %s: %s: %w", t.config.Command, msg, err)
		}
		return nil, fmt.Errorf("analyzer %s: %w", t.config.Command, err)
	}

	return parseTokenLines(&stdout)
}

// parseTokenLines reads "form<TAB>tag" lines. Blank lines are skipped;
// a line without a tab is malformed output from the analyzer.
func parseTokenLines(r *bytes.Buffer) ([]Token, error) {
	var tokens []Token
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		form, tag, ok := strings.Cut(line, "\t")
		if !ok {
			return nil, fmt.Errorf("malformed analyzer output line: %q", line)
		}
		tokens = append(tokens, Token{Form: form, Tag: strings.TrimSpace(tag)})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read analyzer output: %w", err)
	}
	return tokens, nil
}
