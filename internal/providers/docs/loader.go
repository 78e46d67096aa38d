package docs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/finchlabs/finchbot/pkg/conv"
	"github.com/finchlabs/finchbot/pkg/log"
)

// ChunkSize is the fixed retrieval unit size in runes.
const ChunkSize = 300

// Loader reads knowledge documents from a directory and slices them into
// fixed-size chunks for ingestion.
type Loader struct {
	dir string
}

func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// LoadChunks reads every .md and .txt file in the docs directory. Markdown is
// flattened to plain text before chunking; a file that fails to render falls
// back to its raw content.
func (l *Loader) LoadChunks(ctx context.Context) ([]string, error) {
	logger := log.FromCtx(ctx)

	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("read docs dir: %w", err)
	}

	var chunks []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".md" && ext != ".txt" {
			continue
		}

		raw, err := os.ReadFile(filepath.Join(l.dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", entry.Name(), err)
		}

		text := string(raw)
		if ext == ".md" {
			plain, err := conv.MarkdownToText(raw)
			if err != nil {
				logger.Warn().Err(err).Str("file", entry.Name()).Msg("markdown render failed, using raw content")
			} else {
				text = plain
			}
		}

		fileChunks := Split(text, ChunkSize)
		logger.Debug().Str("file", entry.Name()).Int("chunks", len(fileChunks)).Msg("loaded document")
		chunks = append(chunks, fileChunks...)
	}

	return chunks, nil
}

// Split slices text into consecutive chunks of at most size runes.
func Split(text string, size int) []string {
	if size <= 0 || strings.TrimSpace(text) == "" {
		return nil
	}

	runes := []rune(text)
	chunks := make([]string, 0, (len(runes)+size-1)/size)
	for i := 0; i < len(runes); i += size {
		end := i + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[i:end]))
	}
	return chunks
}
