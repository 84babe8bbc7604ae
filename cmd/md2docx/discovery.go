package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/alnah/go-md2docx/internal/fileutil"
)

// FileToExport represents a single markdown file to process.
type FileToExport struct {
	InputPath string // markdown source file
	OutputDir string // directory the DOCX and image dir land in
	BaseName  string // output base name without extension
}

// discoverFiles finds all markdown files to export. A file input yields one
// entry; a directory is walked recursively and its relative tree is
// mirrored under outputDir. Empty outputDir means "next to the source".
func discoverFiles(inputPath, outputDir string) ([]FileToExport, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if err := validateMarkdownExtension(inputPath); err != nil {
			return nil, err
		}
		return []FileToExport{fileEntry(inputPath, outputDir, "")}, nil
	}

	var files []FileToExport
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := filepath.Ext(path)
		if ext != ".md" && ext != ".markdown" {
			return nil
		}
		files = append(files, fileEntry(path, outputDir, inputPath))
		return nil
	})

	return files, err
}

// fileEntry builds the export entry for one markdown file.
func fileEntry(inputPath, outputDir, baseInputDir string) FileToExport {
	base := fileutil.BaseWithoutExt(inputPath)

	outDir := filepath.Dir(inputPath)
	if outputDir != "" {
		outDir = outputDir
		if baseInputDir != "" {
			if rel, err := filepath.Rel(baseInputDir, inputPath); err == nil {
				if relDir := filepath.Dir(rel); relDir != "." {
					outDir = filepath.Join(outputDir, relDir)
				}
			}
		}
	}

	return FileToExport{InputPath: inputPath, OutputDir: outDir, BaseName: base}
}

// validateMarkdownExtension checks that the file has a .md or .markdown extension.
func validateMarkdownExtension(path string) error {
	ext := filepath.Ext(path)
	if ext != ".md" && ext != ".markdown" {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, ext)
	}
	return nil
}
