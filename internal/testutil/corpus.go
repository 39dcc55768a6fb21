// Package testutil provides reusable test utilities for kvasir
// integration tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// Corpus represents a temporary documentation directory for testing.
type Corpus struct {
	// Path is the docs root handed to the CLI via --docs-path.
	Path string

	// Home is an isolated home directory so runs never read the
	// developer's real config file.
	Home string

	t     *testing.T
	files map[string]string
	env   map[string]string
}

// NewCorpus creates a new corpus builder.
// Call Build() to create the actual directory.
func NewCorpus(t *testing.T) *Corpus {
	t.Helper()
	return &Corpus{
		t:     t,
		files: make(map[string]string),
		env:   make(map[string]string),
	}
}

// WithFile adds a file to the corpus.
// The path is relative to the corpus root.
func (c *Corpus) WithFile(path, content string) *Corpus {
	c.files[path] = content
	return c
}

// WithEnv sets an environment variable for CLI runs against this corpus.
func (c *Corpus) WithEnv(key, value string) *Corpus {
	c.env[key] = value
	return c
}

// Build creates the corpus directory and all configured files.
// Returns the Corpus for method chaining.
func (c *Corpus) Build() *Corpus {
	c.t.Helper()

	c.Path = c.t.TempDir()
	c.Home = c.t.TempDir()

	for path, content := range c.files {
		c.writeFile(path, content)
	}

	return c
}

// writeFile writes a file to the corpus, creating directories as needed.
func (c *Corpus) writeFile(relPath, content string) {
	c.t.Helper()
	fullPath := filepath.Join(c.Path, relPath)

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		c.t.Fatalf("failed to create directory %s: %v", dir, err)
	}

	if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
		c.t.Fatalf("failed to write file %s: %v", fullPath, err)
	}
}

// ReadFile reads a file from the corpus.
// Returns the content as a string.
func (c *Corpus) ReadFile(relPath string) string {
	c.t.Helper()
	fullPath := filepath.Join(c.Path, relPath)
	content, err := os.ReadFile(fullPath)
	if err != nil {
		c.t.Fatalf("failed to read file %s: %v", fullPath, err)
	}
	return string(content)
}

// ReadHomeFile reads a file from the isolated home directory. Useful
// for asserting on config files written by mcp install.
func (c *Corpus) ReadHomeFile(relPath string) string {
	c.t.Helper()
	fullPath := filepath.Join(c.Home, relPath)
	content, err := os.ReadFile(fullPath)
	if err != nil {
		c.t.Fatalf("failed to read file %s: %v", fullPath, err)
	}
	return string(content)
}

// FileExists checks if a file exists in the corpus.
func (c *Corpus) FileExists(relPath string) bool {
	c.t.Helper()
	_, err := os.Stat(filepath.Join(c.Path, relPath))
	return err == nil
}

// HomeFileExists checks if a file exists in the isolated home.
func (c *Corpus) HomeFileExists(relPath string) bool {
	c.t.Helper()
	_, err := os.Stat(filepath.Join(c.Home, relPath))
	return err == nil
}

// SampleGuide returns a multi-level document with front matter. The
// section ids are 1 (User Guide), 1/1 (Install), 1/2 (Configure) and
// 1/2/1 (Advanced).
func SampleGuide() string {
	return `---
title: User Guide
description: How to install and configure the indexer
keywords: [guide, setup]
---

# User Guide

Welcome to the guide.

## Install

Run the installer from a terminal.

## Configure

Edit the config file.

### Advanced

Tune the advanced knobs.
`
}

// SampleAPI returns a flat two-level document without front matter. The
// section ids are 1 (API Reference), 1/1 (Endpoints) and 1/2 (Errors).
func SampleAPI() string {
	return `# API Reference

## Endpoints

GET /documents returns every indexed document.

## Errors

Errors carry stable string codes.
`
}
