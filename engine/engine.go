package engine

import (
	"fmt"
	"path/filepath"
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/jesspatton/spectree/config"
	"github.com/jesspatton/spectree/filesystem"
	"github.com/jesspatton/spectree/runner"
	"github.com/jesspatton/spectree/spectree"
)

// Messages

// SpecsLoadedMsg carries the result of a discovery pass.
type SpecsLoadedMsg struct {
	Specs []spectree.Spec
	Err   error
}

// WatcherMsg indicates a file system event occurred.
type WatcherMsg string

// WatcherReadyMsg carries the initialized watcher.
type WatcherReadyMsg struct {
	watcher *filesystem.Watcher
}

// Engine manages the application logic and side effects. The spec tree is
// rebuilt from scratch whenever the specs, the search or the separator change.
type Engine struct {
	State   State
	cfg     config.Config
	logger  *log.Logger
	runner  *runner.Runner
	watcher *filesystem.Watcher
}

// New creates a new Engine instance.
func New(rootPath string, cfg config.Config, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	state := NewState(rootPath)
	state.Search = cfg.Search
	if cfg.Separator != "" {
		state.Separator = cfg.Separator
	}
	for _, dir := range cfg.Collapsed {
		state.Collapsed[dir] = struct{}{}
	}
	return &Engine{
		State:  state,
		cfg:    cfg,
		logger: logger,
		runner: runner.NewRunner(),
	}
}

// Init initializes the engine's side effects.
func (e *Engine) Init() tea.Cmd {
	return tea.Batch(
		e.LoadSpecs,
		e.startWatcher,
		e.waitForUpdates,
	)
}

// Update handles incoming messages and updates the engine state.
func (e *Engine) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case SpecsLoadedMsg:
		if msg.Err != nil {
			e.State.Err = msg.Err
			e.logger.Error("spec discovery failed", "err", msg.Err)
			return nil
		}
		// A failed rebuild is recorded in State.Err and logged by Rebuild.
		_ = e.SetSpecs(msg.Specs)
		return nil

	case WatcherReadyMsg:
		e.watcher = msg.watcher
		return e.waitForWatcherEvents

	case WatcherMsg:
		return tea.Batch(e.LoadSpecs, e.queueWatched(string(msg)), e.waitForWatcherEvents)

	case runner.OutputUpdate:
		e.State.CurrentOutput += string(msg) + "\n"
		if e.State.RunningSpec != "" {
			e.State.TestOutputs[e.State.RunningSpec] = e.State.CurrentOutput
		}
		return e.waitForUpdates

	case runner.StatusUpdate:
		if msg.Spec != "" {
			if msg.Err == nil {
				e.State.NodeStatus[msg.Spec] = StatusPass
				e.State.CurrentOutput += "\nPASS\n"
			} else {
				e.State.NodeStatus[msg.Spec] = StatusFail
				e.State.CurrentOutput += fmt.Sprintf("\nFAIL: %v\n", msg.Err)
			}
			e.State.TestOutputs[msg.Spec] = e.State.CurrentOutput
		}
		e.State.RunningSpec = ""

		if next := e.dequeue(); next != "" {
			return tea.Batch(e.waitForUpdates, e.TriggerTest(next))
		}
		return e.waitForUpdates
	}

	return nil
}

// Tree inputs

// SetSpecs replaces the spec list and rebuilds the tree.
func (e *Engine) SetSpecs(specs []spectree.Spec) error {
	e.State.Specs = specs
	return e.Rebuild()
}

// SetSearch changes the search filter and rebuilds the tree.
func (e *Engine) SetSearch(search string) error {
	if search == e.State.Search && e.State.Tree != nil {
		return nil
	}
	e.State.Search = search
	return e.Rebuild()
}

// SetSeparator changes the path separator and rebuilds the tree.
func (e *Engine) SetSeparator(sep string) error {
	if sep == "" {
		sep = spectree.DefaultSeparator
	}
	e.State.Separator = sep
	return e.Rebuild()
}

// Rebuild derives a new tree from the current inputs. On failure the previous
// tree is kept and the error is recorded in State.Err.
func (e *Engine) Rebuild() error {
	tree, err := spectree.Derive(e.State.Specs, spectree.Options{
		Separator:     e.State.Separator,
		Search:        e.State.Search,
		CollapsedDirs: e.CollapsedDirs(),
	})
	if err != nil {
		e.State.Err = err
		e.logger.Error("tree rebuild failed", "err", err)
		return err
	}

	e.State.Tree = tree
	e.State.Err = nil
	e.logger.Debug("tree rebuilt",
		"specs", len(e.State.Specs),
		"search", e.State.Search,
		"directories", len(tree.Registry)-1,
		"files", len(spectree.CollectFiles(tree.Root)),
	)
	return nil
}

// Collapse state

// ToggleCollapse flips the collapsed state of the directory at path. The
// state is kept by path so it carries over to later rebuilds.
func (e *Engine) ToggleCollapse(path string) {
	if path == spectree.RootPath {
		return
	}
	_, collapsed := e.State.Collapsed[path]
	if collapsed {
		delete(e.State.Collapsed, path)
	} else {
		e.State.Collapsed[path] = struct{}{}
	}
	if e.State.Tree != nil {
		if dir, ok := e.State.Tree.Lookup(path); ok {
			dir.Collapsed = !collapsed
		}
	}
}

// IsCollapsed reports whether the directory at path is collapsed.
func (e *Engine) IsCollapsed(path string) bool {
	_, ok := e.State.Collapsed[path]
	return ok
}

// CollapsedDirs returns the collapsed directory paths, sorted.
func (e *Engine) CollapsedDirs() []string {
	return sortedKeys(e.State.Collapsed)
}

// Actions

// TriggerTest runs the spec with the given relative path.
func (e *Engine) TriggerTest(relative string) tea.Cmd {
	spec, ok := e.State.Spec(relative)
	if !ok {
		return nil
	}

	e.State.RunningSpec = relative
	e.State.LastRunSpec = relative
	e.State.CurrentOutput = fmt.Sprintf("Running %s...\n", spec.DisplayName())
	e.State.TestOutputs[relative] = e.State.CurrentOutput
	e.State.NodeStatus[relative] = StatusRunning

	job, err := runner.PrepareJob(spec, e.cfg.Runner)
	if err != nil {
		e.State.CurrentOutput += "Error: Could not find package.json\n"
		e.State.TestOutputs[relative] = e.State.CurrentOutput
		e.State.NodeStatus[relative] = StatusFail
		e.State.RunningSpec = ""
		e.logger.Warn("cannot prepare job", "spec", relative, "err", err)
		return nil
	}

	e.logger.Info("running spec", "spec", relative, "command", job.Command, "root", job.Root)
	return func() tea.Msg {
		e.runner.Run(*job)
		return nil
	}
}

func (e *Engine) ReRunLast() tea.Cmd {
	if e.State.LastRunSpec != "" {
		return e.TriggerTest(e.State.LastRunSpec)
	}
	return nil
}

func (e *Engine) ToggleWatch(relative string) {
	if _, exists := e.State.Watched[relative]; exists {
		delete(e.State.Watched, relative)
	} else {
		e.State.Watched[relative] = struct{}{}
	}
}

func (e *Engine) ClearWatched() {
	e.State.Watched = make(map[string]struct{})
}

// Close releases the watcher and stops any running test.
func (e *Engine) Close() {
	if e.watcher != nil {
		e.watcher.Close()
		e.watcher = nil
	}
	e.runner.Kill()
}

// queueWatched queues a re-run of changedPath when it is a watched spec.
func (e *Engine) queueWatched(changedPath string) tea.Cmd {
	rel, err := filepath.Rel(e.State.RootPath, changedPath)
	if err != nil {
		return nil
	}
	rel = filepath.ToSlash(rel)
	if _, watched := e.State.Watched[rel]; !watched {
		return nil
	}
	for _, q := range e.State.Queue {
		if q == rel {
			return nil
		}
	}
	e.State.Queue = append(e.State.Queue, rel)

	if e.State.RunningSpec == "" {
		return e.TriggerTest(e.dequeue())
	}
	return nil
}

func (e *Engine) dequeue() string {
	if len(e.State.Queue) == 0 {
		return ""
	}
	next := e.State.Queue[0]
	e.State.Queue = e.State.Queue[1:]
	return next
}

// Internal Commands

// LoadSpecs discovers the specs below the root path.
func (e *Engine) LoadSpecs() tea.Msg {
	specs, err := filesystem.Discover(e.State.RootPath, filesystem.DiscoverOptions{
		Exclude:     e.cfg.Exclude,
		ChangedOnly: e.cfg.ChangedOnly,
		Logger:      e.logger,
	})
	return SpecsLoadedMsg{Specs: specs, Err: err}
}

func (e *Engine) startWatcher() tea.Msg {
	ignorer := filesystem.NewIgnorer(e.State.RootPath, e.cfg.Exclude...)
	w, err := filesystem.NewWatcher(e.State.RootPath, ignorer, e.logger)
	if err != nil {
		e.logger.Warn("file watching disabled", "err", err)
		return nil
	}
	return WatcherReadyMsg{watcher: w}
}

func (e *Engine) waitForWatcherEvents() tea.Msg {
	if e.watcher == nil {
		return nil
	}
	eventPath, ok := <-e.watcher.Events
	if !ok {
		return nil
	}
	return WatcherMsg(eventPath)
}

func (e *Engine) waitForUpdates() tea.Msg {
	update, ok := <-e.runner.Updates
	if !ok {
		return nil
	}
	return update
}

// Accessors

// GetWatchedFiles returns the watched spec paths sorted for stable rendering.
func (e *Engine) GetWatchedFiles() []string {
	return sortedKeys(e.State.Watched)
}

func (e *Engine) GetTestOutput(relative string) (string, bool) {
	val, ok := e.State.TestOutputs[relative]
	return val, ok
}

func (e *Engine) GetNodeStatus(relative string) (TestStatus, bool) {
	val, ok := e.State.NodeStatus[relative]
	return val, ok
}

func (e *Engine) GetTree() *spectree.Tree {
	return e.State.Tree
}

func (e *Engine) GetCurrentOutput() string {
	return e.State.CurrentOutput
}

func (e *Engine) IsWatched(relative string) bool {
	_, exists := e.State.Watched[relative]
	return exists
}

func sortedKeys(set map[string]struct{}) []string {
	result := make([]string, 0, len(set))
	for k := range set {
		result = append(result, k)
	}
	sort.Strings(result)
	return result
}
