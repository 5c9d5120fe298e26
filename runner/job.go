package runner

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/jesspatton/spectree/config"
	"github.com/jesspatton/spectree/spectree"
)

// PathPlaceholder is replaced by the spec path in command templates.
const PathPlaceholder = "<path>"

// TestJob represents a test execution job.
type TestJob struct {
	// Spec is the relative path of the spec being run.
	Spec    string
	Command string
	Args    []string
	Root    string
}

// GetExecutionRoot finds the nearest package.json starting from the test file path and walking up.
func GetExecutionRoot(testFilePath string) (string, error) {
	dir := filepath.Dir(testFilePath)
	for {
		if _, err := os.Stat(filepath.Join(dir, "package.json")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

// PrepareJob finds the execution root of spec, picks the matching command
// template and expands it.
func PrepareJob(spec spectree.Spec, cfg config.Runner) (*TestJob, error) {
	execRoot, err := GetExecutionRoot(spec.Absolute)
	if err != nil {
		return nil, err
	}

	relToRoot, err := filepath.Rel(execRoot, spec.Absolute)
	if err != nil {
		return nil, err
	}
	matchPath := filepath.ToSlash(relToRoot)

	commandTemplate := cfg.Command
	if commandTemplate == "" {
		commandTemplate = config.DefaultCommand
	}
	for _, override := range cfg.Overrides {
		if matchPattern(override.Pattern, matchPath) {
			commandTemplate = override.Command
			break
		}
	}

	cmd, args := BuildCommandString(commandTemplate, relToRoot)

	return &TestJob{
		Spec:    spec.Relative,
		Command: cmd,
		Args:    args,
		Root:    execRoot,
	}, nil
}

// BuildCommandString constructs the final command and its arguments.
func BuildCommandString(template string, testPath string) (string, []string) {
	cmdStr := strings.ReplaceAll(template, PathPlaceholder, testPath)
	parts := strings.Fields(cmdStr)
	if len(parts) == 0 {
		return "", nil
	}
	return parts[0], parts[1:]
}

func matchPattern(pattern, path string) bool {
	if strings.HasSuffix(pattern, "/**") {
		prefix := strings.TrimSuffix(pattern, "**")
		return strings.HasPrefix(path, prefix)
	}

	matched, err := filepath.Match(pattern, path)
	if err != nil {
		return false
	}
	return matched
}
