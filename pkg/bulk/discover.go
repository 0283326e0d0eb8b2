package bulk

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/mnov88/marked/pkg/eurlex"
)

// Discover finds every file named filename under root, sorted by path.
func Discover(root string, filename string) ([]Task, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("failed to scan %s: not a directory", root)
	}

	matches, err := doublestar.Glob(os.DirFS(root), "**/"+filename, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}
	sort.Strings(matches)

	tasks := make([]Task, 0, len(matches))
	for _, match := range matches {
		path := filepath.Join(root, filepath.FromSlash(match))
		folder := filepath.Dir(path)
		task := Task{Path: path, Folder: folder}
		if celex, ok := eurlex.FindCELEX(filepath.Base(folder)); ok {
			task.CELEX = celex
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// Select applies the type and year filters, then the limit.
func (config Config) Select(tasks []Task) []Task {
	selected := make([]Task, 0, len(tasks))
	for _, task := range tasks {
		if config.Limit > 0 && len(selected) >= config.Limit {
			break
		}
		if config.accepts(task) {
			selected = append(selected, task)
		}
	}
	return selected
}

// accepts checks the TYPE-YEAR-NUMBER folder name against the filters.
// Folders without that structure only pass when no filter is set.
func (config Config) accepts(task Task) bool {
	if len(config.TypeFilter) == 0 && len(config.YearFilter) == 0 {
		return true
	}

	folder, ok := eurlex.ParseFolderName(filepath.Base(task.Folder))
	if !ok {
		return false
	}

	if len(config.TypeFilter) > 0 && !matchesAny(folder.Type, config.TypeFilter, strings.ToUpper) {
		return false
	}
	if len(config.YearFilter) > 0 && !matchesAny(folder.Year, config.YearFilter, eurlex.NormalizeYear) {
		return false
	}
	return true
}

func matchesAny(value string, filters []string, normalize func(string) string) bool {
	for _, filter := range filters {
		if normalize(strings.TrimSpace(filter)) == value {
			return true
		}
	}
	return false
}
