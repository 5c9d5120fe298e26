package engine

import (
	"github.com/jesspatton/spectree/spectree"
)

// TestStatus represents the current state of a test file.
type TestStatus int

const (
	// StatusIdle indicates the test is not running.
	StatusIdle TestStatus = iota
	// StatusRunning indicates the test is currently executing.
	StatusRunning
	// StatusPass indicates the last run passed.
	StatusPass
	// StatusFail indicates the last run failed.
	StatusFail
)

// State represents the core business state of the application.
// Per-spec maps are keyed by the spec's relative path, which survives rebuilds.
type State struct {
	// Tree inputs
	Specs     []spectree.Spec
	Search    string
	Separator string
	Collapsed map[string]struct{}

	// Derived
	Tree *spectree.Tree
	Err  error

	Watched map[string]struct{}

	// Test Execution State
	Queue       []string
	NodeStatus  map[string]TestStatus
	TestOutputs map[string]string

	// Live State
	RunningSpec   string
	LastRunSpec   string
	CurrentOutput string
	RootPath      string
}

// NewState creates a new State instance.
func NewState(rootPath string) State {
	return State{
		RootPath:    rootPath,
		Separator:   spectree.DefaultSeparator,
		Collapsed:   make(map[string]struct{}),
		Watched:     make(map[string]struct{}),
		NodeStatus:  make(map[string]TestStatus),
		TestOutputs: make(map[string]string),
		Queue:       make([]string, 0),
	}
}

// Spec returns the loaded spec with the given relative path.
func (s *State) Spec(relative string) (spectree.Spec, bool) {
	for _, spec := range s.Specs {
		if spec.Relative == relative {
			return spec, true
		}
	}
	return spectree.Spec{}, false
}
