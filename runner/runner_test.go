package runner

import (
	"strings"
	"testing"
	"time"
)

// waitStatus drains updates until a StatusUpdate arrives.
func waitStatus(t *testing.T, r *Runner) ([]string, StatusUpdate) {
	t.Helper()
	var output []string
	timeout := time.After(3 * time.Second)
	for {
		select {
		case update := <-r.Updates:
			switch u := update.(type) {
			case OutputUpdate:
				output = append(output, string(u))
			case StatusUpdate:
				return output, u
			}
		case <-timeout:
			t.Fatal("Timeout waiting for command completion")
		}
	}
}

func TestRunner(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r := NewRunner()
		r.Run(TestJob{Spec: "a.cy.ts", Command: "echo", Args: []string{"hello"}, Root: "."})

		output, status := waitStatus(t, r)
		if status.Err != nil {
			t.Errorf("Expected success, got error: %v", status.Err)
		}
		if status.Spec != "a.cy.ts" {
			t.Errorf("Expected status for a.cy.ts, got %q", status.Spec)
		}
		if !strings.Contains(strings.Join(output, ""), "hello") {
			t.Errorf("Expected output to contain 'hello', got %v", output)
		}
	})

	t.Run("Failure", func(t *testing.T) {
		r := NewRunner()
		r.Run(TestJob{Command: "sh", Args: []string{"-c", "exit 1"}, Root: "."})

		if _, status := waitStatus(t, r); status.Err == nil {
			t.Error("Expected error, got success")
		}
	})

	t.Run("Missing Command", func(t *testing.T) {
		r := NewRunner()
		r.Run(TestJob{Command: "spectree-no-such-binary", Root: "."})

		output, status := waitStatus(t, r)
		if status.Err == nil {
			t.Error("Expected error for a missing binary")
		}
		if len(output) == 0 || !strings.Contains(output[0], "Error starting command") {
			t.Errorf("Expected start error in output, got %v", output)
		}
	})

	t.Run("Kill", func(t *testing.T) {
		r := NewRunner()
		r.Run(TestJob{Command: "sleep", Args: []string{"2"}, Root: "."})

		time.Sleep(100 * time.Millisecond)
		r.Kill()

		if _, status := waitStatus(t, r); status.Err == nil {
			t.Error("Expected error from killed process")
		}
	})

	t.Run("Concurrent Run", func(t *testing.T) {
		r := NewRunner()
		r.Run(TestJob{Spec: "first", Command: "sleep", Args: []string{"2"}, Root: "."})
		time.Sleep(100 * time.Millisecond)
		r.Run(TestJob{Spec: "second", Command: "echo", Args: []string{"second"}, Root: "."})

		output, status := waitStatus(t, r)
		if status.Spec != "second" {
			t.Errorf("Expected only the latest job to report status, got %q", status.Spec)
		}
		if !strings.Contains(strings.Join(output, ""), "second") {
			t.Errorf("Expected output to contain 'second', got %v", output)
		}
	})
}
