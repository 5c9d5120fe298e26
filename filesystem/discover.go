package filesystem

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/jesspatton/spectree/spectree"
)

// DiscoverOptions tunes Discover.
type DiscoverOptions struct {
	// Exclude holds extra ignore patterns on top of .gitignore.
	Exclude []string
	// ChangedOnly keeps only specs git reports as changed.
	ChangedOnly bool
	Logger      *log.Logger
}

// Discover walks root and returns a spec for every test file found, sorted by
// relative path. Relative paths always use "/".
func Discover(root string, opts DiscoverOptions) ([]spectree.Spec, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("discover specs: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}

	var changed map[string]struct{}
	if opts.ChangedOnly {
		files, err := ChangedFiles(abs)
		if err != nil {
			return nil, fmt.Errorf("discover specs: %w", err)
		}
		changed = make(map[string]struct{}, len(files))
		for _, f := range files {
			changed[f] = struct{}{}
		}
	}

	ignorer := NewIgnorer(abs, opts.Exclude...)
	onError := func(err error) bool {
		logger.Warn("skipping unreadable path", "err", err)
		return true
	}

	var specs []spectree.Spec
	for file := range StreamFiles(abs, onError) {
		if !IsTestFile(file.Filename) || ignorer.ShouldIgnore(file.Location) {
			continue
		}
		if changed != nil {
			if _, ok := changed[file.Location]; !ok {
				continue
			}
		}

		rel, err := filepath.Rel(abs, file.Location)
		if err != nil {
			continue
		}
		specs = append(specs, spectree.NewSpec(filepath.ToSlash(rel), file.Location))
	}

	sort.Slice(specs, func(i, j int) bool { return specs[i].Relative < specs[j].Relative })
	logger.Debug("discovered specs", "root", abs, "count", len(specs))
	return specs, nil
}
