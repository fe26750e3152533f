// Package logger implements a logging adapter using log/slog.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"sync"

	"go.trai.ch/mason/internal/core/ports"
)

// messager describes an error that can report its own message without the chain.
// This matches the Message() method provided by zerr.Error (go.trai.ch/zerr v0.3.0+).
// If zerr's API changes, errors will gracefully fall back to standard error handling.
type messager interface {
	Message() string
}

// Logger implements ports.Logger using log/slog.
type Logger struct {
	logger *slog.Logger
	mu     sync.RWMutex
}

// New creates a new Logger writing pretty output to stderr.
func New() ports.Logger {
	handler := NewPrettyHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	return &Logger{
		logger: slog.New(handler),
	}
}

// SetOutput updates the logger's output destination.
// If w is nil, os.Stderr is used as the default.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if w == nil {
		w = os.Stderr
	}
	handler := NewPrettyHandler(w, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	l.logger = slog.New(handler)
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs an error with its cause chain rendered hierarchically,
// including any metadata attached along the chain.
func (l *Logger) Error(err error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	entries := collectErrorEntries(err)
	if len(entries) == 0 {
		return
	}

	l.logger.Error(formatErrorEntries(entries))
}

// ErrorEntry is one renderable node of an error chain.
type ErrorEntry struct {
	Message  string
	Metadata map[string]any
}

// metadataer matches the Metadata() accessor of zerr.Error.
type metadataer interface {
	Metadata() map[string]any
}

// collectErrorEntries flattens an error chain into renderable entries.
// Joined errors contribute the entries of every branch in order, zerr
// nodes contribute their bare message plus metadata, and a plain error
// terminates its branch with its full Error() text. Metadata attached to
// a message-less node (zerr.With over a joined error) folds into the
// preceding entry.
func collectErrorEntries(err error) []ErrorEntry {
	entries := walkErrorChain(err)

	var merged []ErrorEntry
	for _, entry := range entries {
		if entry.Message == "" && len(merged) > 0 {
			if len(entry.Metadata) > 0 {
				previous := &merged[len(merged)-1]
				if previous.Metadata == nil {
					previous.Metadata = make(map[string]any, len(entry.Metadata))
				}
				for key, value := range entry.Metadata {
					previous.Metadata[key] = value
				}
			}
			continue
		}
		merged = append(merged, entry)
	}
	return merged
}

func walkErrorChain(err error) []ErrorEntry {
	if err == nil {
		return nil
	}

	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var entries []ErrorEntry
		for _, branch := range joined.Unwrap() {
			entries = append(entries, walkErrorChain(branch)...)
		}
		return entries
	}

	if m, ok := err.(messager); ok {
		entry := ErrorEntry{Message: m.Message()}
		if md, ok := err.(metadataer); ok {
			entry.Metadata = md.Metadata()
		}
		return append([]ErrorEntry{entry}, walkErrorChain(errors.Unwrap(err))...)
	}

	return []ErrorEntry{{Message: err.Error()}}
}

func formatErrorEntries(entries []ErrorEntry) string {
	var formattedLines []string
	for i, entry := range entries {
		lines := strings.Split(entry.Message, "\n")

		if i == 0 {
			formattedLines = append(formattedLines, "Error: "+lines[0])
			for _, line := range lines[1:] {
				formattedLines = append(formattedLines, "       "+line)
			}
			formattedLines = append(formattedLines, formatMetadata(entry.Metadata, "       ")...)
			continue
		}
		if i == 1 {
			formattedLines = append(formattedLines, "", "  Caused by:")
		}
		formattedLines = append(formattedLines, "    - "+lines[0])
		for _, line := range lines[1:] {
			formattedLines = append(formattedLines, "      "+line)
		}
		formattedLines = append(formattedLines, formatMetadata(entry.Metadata, "      ")...)
	}
	return strings.Join(formattedLines, "\n")
}

// formatMetadata renders metadata as indented key: value lines, keys
// sorted alphabetically. Multiline values stay aligned under their key.
func formatMetadata(metadata map[string]any, indent string) []string {
	if len(metadata) == 0 {
		return nil
	}

	keys := make([]string, 0, len(metadata))
	for key := range metadata {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var lines []string
	for _, key := range keys {
		value := strings.TrimRight(fmt.Sprintf("%v", metadata[key]), "\n")
		valueLines := strings.Split(value, "\n")
		lines = append(lines, indent+key+": "+valueLines[0])
		for _, line := range valueLines[1:] {
			lines = append(lines, indent+"  "+line)
		}
	}
	return lines
}
