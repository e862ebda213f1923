package service

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
	"github.com/webqual/webgate/domain"
	"go.uber.org/zap"
)

// IgnoreFileName is the per-directory ignore file honored while collecting
// result documents
const IgnoreFileName = ".webgateignore"

// ResultLoaderImpl loads CategoryResult documents produced by external
// category suites (for example browser-automation probes) from JSON files
type ResultLoaderImpl struct {
	excludePatterns []string
	log             *zap.SugaredLogger
}

// NewResultLoader creates a result loader with the configured exclude patterns
func NewResultLoader(excludePatterns []string, log *zap.SugaredLogger) *ResultLoaderImpl {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &ResultLoaderImpl{
		excludePatterns: excludePatterns,
		log:             log,
	}
}

// Load reads category results from the given files and directories.
// Directories are walked recursively for *.json documents, honoring a
// .webgateignore file at the directory root plus config exclude patterns.
// An unreadable or invalid document degrades to the fail-closed sentinel for
// the category named by its filename.
func (l *ResultLoaderImpl) Load(paths []string) ([]domain.CategoryResult, error) {
	if len(paths) == 0 {
		return nil, domain.NewInvalidInputError("no result paths specified", nil)
	}

	var files []string
	for _, path := range paths {
		collected, err := l.collectResultFiles(path)
		if err != nil {
			return nil, err
		}
		files = append(files, collected...)
	}

	results := make([]domain.CategoryResult, 0, len(files))
	for _, file := range files {
		results = append(results, l.loadFile(file))
	}
	return results, nil
}

// collectResultFiles expands a path into the result documents beneath it
func (l *ResultLoaderImpl) collectResultFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("cannot read result path %s", path), err)
	}

	if !info.IsDir() {
		return []string{path}, nil
	}

	matcher := l.ignoreMatcher(path)

	var files []string
	err = filepath.Walk(path, func(filePath string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if strings.ToLower(filepath.Ext(filePath)) != ".json" {
			return nil
		}

		rel, relErr := filepath.Rel(path, filePath)
		if relErr != nil {
			rel = filePath
		}
		if matcher != nil && matcher.MatchesPath(rel) {
			return nil
		}
		files = append(files, filePath)
		return nil
	})
	if err != nil {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("failed to walk %s", path), err)
	}
	return files, nil
}

// ignoreMatcher combines the directory's .webgateignore with configured
// exclude patterns
func (l *ResultLoaderImpl) ignoreMatcher(dir string) *ignore.GitIgnore {
	ignoreFile := filepath.Join(dir, IgnoreFileName)
	if _, err := os.Stat(ignoreFile); err == nil {
		content, err := os.ReadFile(ignoreFile)
		if err == nil {
			lines := strings.Split(string(content), "\n")
			lines = append(lines, l.excludePatterns...)
			return ignore.CompileIgnoreLines(lines...)
		}
		l.log.Warnf("cannot read %s: %v", ignoreFile, err)
	}
	if len(l.excludePatterns) > 0 {
		return ignore.CompileIgnoreLines(l.excludePatterns...)
	}
	return nil
}

// loadFile parses and validates one result document. Validation happens here,
// at the boundary where external collaborators hand off results; failure
// yields the sentinel so a broken producer blocks deployment.
func (l *ResultLoaderImpl) loadFile(path string) domain.CategoryResult {
	category := CategoryFromFilename(path)

	content, err := os.ReadFile(path)
	if err != nil {
		l.log.Warnw("cannot read result file", "file", path, "error", err)
		return domain.NewFailedCategoryResult(category, fmt.Sprintf("unreadable result file: %v", err))
	}

	var result domain.CategoryResult
	if err := json.Unmarshal(content, &result); err != nil {
		l.log.Warnw("cannot parse result file", "file", path, "error", err)
		return domain.NewFailedCategoryResult(category, fmt.Sprintf("malformed result file: %v", err))
	}

	if result.Category == "" {
		result.Category = category
	}
	if err := result.Validate(); err != nil {
		l.log.Warnw("invalid category result", "file", path, "error", err)
		return domain.NewFailedCategoryResult(category, err.Error())
	}
	return result
}

// CategoryFromFilename derives a category name from a result filename,
// stripping the extension and common producer suffixes:
// "security-results.json" becomes "security".
func CategoryFromFilename(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	for _, suffix := range []string{"-results", "-result", "-report", ".results"} {
		name = strings.TrimSuffix(name, suffix)
	}
	if name == "" {
		return "unknown"
	}
	return name
}
