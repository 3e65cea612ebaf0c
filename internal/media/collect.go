package media

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Collect expands paths (files and directories) into a sorted, deduplicated
// list of files whose kind is one of kinds. Directories are walked
// recursively. Paths that do not exist are skipped, matching drag-and-drop
// behaviour where stale entries are ignored. With no kinds every recognised
// media file is accepted.
func Collect(paths []string, kinds ...Kind) ([]File, error) {
	accept := func(k Kind) bool {
		if k == KindUnknown {
			return false
		}
		if len(kinds) == 0 {
			return true
		}
		for _, want := range kinds {
			if k == want {
				return true
			}
		}
		return false
	}

	found := make(map[string]struct{})
	for _, raw := range paths {
		path := strings.TrimSpace(raw)
		if path == "" {
			continue
		}
		info, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("inspect %q: %w", path, err)
		}
		if !info.IsDir() {
			if accept(KindForPath(path)) {
				found[filepath.Clean(path)] = struct{}{}
			}
			continue
		}
		walkErr := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if accept(KindForPath(p)) {
				found[filepath.Clean(p)] = struct{}{}
			}
			return nil
		})
		if walkErr != nil {
			return nil, fmt.Errorf("walk %q: %w", path, walkErr)
		}
	}

	keys := make([]string, 0, len(found))
	for p := range found {
		keys = append(keys, p)
	}
	sort.Strings(keys)
	return Files(keys), nil
}
