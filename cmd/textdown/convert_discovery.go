package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-textdown"
	"github.com/alnah/go-textdown/internal/fileutil"
)

// Sentinel errors for file discovery.
var (
	ErrInvalidExtension   = errors.New("file must have a .textile or .txt extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrOutputIsInput      = errors.New("output path would overwrite input")
)

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// discoverFiles finds the source files to convert and their output paths.
// A file input is converted whatever its directory; a directory is walked
// recursively for SourceExtensions, skipping hidden directories.
func discoverFiles(inputPath, outputDir, ext string) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if err := validateSourceExtension(inputPath); err != nil {
			return nil, err
		}
		f, err := newFileToConvert(inputPath, resolveOutputPath(inputPath, outputDir, "", ext))
		if err != nil {
			return nil, err
		}
		return []FileToConvert{f}, nil
	}

	var files []FileToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() {
			if path != inputPath && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !fileutil.IsSourceFile(path) {
			return nil
		}
		f, err := newFileToConvert(path, resolveOutputPath(path, outputDir, inputPath, ext))
		if err != nil {
			return err
		}
		files = append(files, f)
		return nil
	})

	return files, err
}

func newFileToConvert(inputPath, outputPath string) (FileToConvert, error) {
	if filepath.Clean(inputPath) == filepath.Clean(outputPath) {
		return FileToConvert{}, fmt.Errorf("%w: %s", ErrOutputIsInput, inputPath)
	}
	return FileToConvert{InputPath: inputPath, OutputPath: outputPath}, nil
}

// resolveOutputPath determines the output path for a source file.
// An outputDir ending in "."+ext names the output file itself. With a
// baseInputDir the source's relative directory is mirrored under outputDir.
func resolveOutputPath(inputPath, outputDir, baseInputDir, ext string) string {
	base := fileutil.ReplaceExtension(filepath.Base(inputPath), ext)

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), base)
	}

	if baseInputDir == "" && strings.HasSuffix(strings.ToLower(outputDir), "."+strings.ToLower(ext)) {
		return outputDir
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			return filepath.Join(outputDir, filepath.Dir(relPath), base)
		}
	}

	return filepath.Join(outputDir, base)
}

// validateSourceExtension checks that path has one of SourceExtensions.
func validateSourceExtension(path string) error {
	if !fileutil.IsSourceFile(path) {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(path))
	}
	return nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > textdown.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, textdown.MaxPoolSize)
	}
	return nil
}
