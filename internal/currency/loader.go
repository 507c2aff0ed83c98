package currency

import (
	"bufio"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// fileLoader implements Loader for reading currency lists from the local file system.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based currency loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "currency-loader").Logger(),
	}
}

// Load reads a currency list file and returns a CodeSet.
// Paths ending in .gz are decompressed on the fly.
func (l *fileLoader) Load(ctx context.Context, path string) (CodeSet, error) {
	l.logger.Info().Str("file", path).Msg("loading currency list")

	file, err := os.Open(path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to open currency list")
		return nil, fmt.Errorf("failed to open currency list %s: %w", path, err)
	}
	defer file.Close()

	var r io.Reader = file
	if strings.HasSuffix(path, ".gz") {
		gzipReader, err := gzip.NewReader(file)
		if err != nil {
			l.logger.Error().Err(err).Str("file", path).Msg("failed to create gzip reader")
			return nil, fmt.Errorf("failed to create gzip reader for %s: %w", path, err)
		}
		defer gzipReader.Close()
		r = gzipReader
	}

	set, err := readCodes(ctx, r)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("error reading currency list")
		return nil, fmt.Errorf("error reading currency list %s: %w", path, err)
	}

	l.logger.Info().
		Str("file", path).
		Int("codes_loaded", set.Size()).
		Msg("currency list loaded successfully")

	return set, nil
}

// readCodes parses one code per line. Blank lines and lines starting with '#' are skipped.
func readCodes(ctx context.Context, r io.Reader) (*mapCodeSet, error) {
	set := newMapCodeSet(256)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		set.add(line)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return set, nil
}

// EnsureNotEmpty rejects a nil or empty set.
func EnsureNotEmpty(set CodeSet, source string) error {
	if set == nil || set.Size() == 0 {
		return fmt.Errorf("currency list %s contains no codes", source)
	}
	return nil
}
