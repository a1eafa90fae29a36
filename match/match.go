// Package match is the high-level pipeline: it loads a template catalogue
// into a registry and runs candidate tree files against it.
package match

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/treepat/treepat/internal/pattern"
	"github.com/treepat/treepat/internal/tree"
	"github.com/treepat/treepat/internal/treeio"
)

// Result pairs one match with the candidate file it came from.
type Result struct {
	Filename string
	pattern.Match
}

// New builds a registry from a catalogue file.
func New(catalogPath string) (*pattern.Registry, error) {
	cat, err := treeio.LoadCatalog(catalogPath)
	if err != nil {
		return nil, err
	}
	return pattern.NewRegistry(cat.Templates, cat.Substitutes)
}

// ProcessFile runs one candidate tree file against the registry.
func ProcessFile(reg *pattern.Registry, path string) ([]Result, error) {
	node, err := treeio.LoadTree(path)
	if err != nil {
		return nil, err
	}
	return wrap(path, reg.FindMatches(node)), nil
}

// ProcessSource runs an already-decoded candidate tree against the
// registry, for callers that hold trees in memory.
func ProcessSource(reg *pattern.Registry, filename string, candidate *tree.Node) []Result {
	return wrap(filename, reg.FindMatches(candidate))
}

func wrap(filename string, matches []pattern.Match) []Result {
	results := make([]Result, 0, len(matches))
	for _, m := range matches {
		results = append(results, Result{Filename: filename, Match: m})
	}
	return results
}

// ProcessFiles runs every path (file or directory) against the registry
// and concatenates the results.
func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	reg *pattern.Registry,
	paths []string,
) ([]Result, error) {
	var all []Result
	for _, path := range paths {
		results, err := ProcessPath(ctx, logger, reg, path)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			}
			return nil, err
		}
		all = append(all, results...)
	}
	return all, nil
}

// ProcessPath handles one path. Directories are walked for tree files and
// processed concurrently: each (template, candidate) attempt owns a
// private capture store, so candidates are safe to run in parallel with a
// shared registry.
func ProcessPath(
	ctx context.Context,
	logger *zap.Logger,
	reg *pattern.Registry,
	path string,
) ([]Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}
	if !info.IsDir() {
		return ProcessFile(reg, path)
	}

	var files []string
	filepath.Walk(path, func(filePath string, fileInfo os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !fileInfo.IsDir() && hasTreeExtension(filePath) {
			files = append(files, filePath)
		}
		return nil
	})

	resultChan := make(chan []Result, len(files))
	errorChan := make(chan error, len(files))

	maxWorkers := runtime.NumCPU()
	sem := make(chan struct{}, maxWorkers)

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetDescription(path),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
	)

	var wg sync.WaitGroup
	for _, file := range files {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(file string) {
			defer wg.Done()
			defer func() { <-sem }()

			results, err := ProcessFile(reg, file)
			if err != nil {
				errorChan <- err
			} else {
				resultChan <- results
			}
			bar.Add(1)
		}(file)
	}
	wg.Wait()
	close(resultChan)
	close(errorChan)
	fmt.Println()

	if err := <-errorChan; err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var all []Result
	for results := range resultChan {
		all = append(all, results...)
	}
	if logger != nil {
		logger.Debug("Processed directory",
			zap.String("path", path),
			zap.Int("files", len(files)),
			zap.Int("matches", len(all)))
	}
	return all, nil
}

func hasTreeExtension(path string) bool {
	return strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml")
}
