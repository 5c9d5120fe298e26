package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"time"
)

// waitDelay bounds how long Wait lingers after a cancelled job is killed.
const waitDelay = 2 * time.Second

// Update is either an OutputUpdate or a StatusUpdate.
type Update interface{}

// OutputUpdate is one line of output from the running job.
type OutputUpdate string

// StatusUpdate reports that the job for Spec finished.
type StatusUpdate struct {
	Spec string
	Err  error
}

type Runner struct {
	mu      sync.Mutex
	currCmd *exec.Cmd
	cancel  context.CancelFunc
	Updates chan Update
}

func NewRunner() *Runner {
	return &Runner{
		Updates: make(chan Update, 100),
	}
}

// Run executes the job. It kills any running job first; only the most
// recent job reports a StatusUpdate.
func (r *Runner) Run(job TestJob) {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
	}

	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel

	cmd := exec.CommandContext(ctx, job.Command, job.Args...)
	cmd.Dir = job.Root
	prepareCommand(cmd)

	r.currCmd = cmd
	r.mu.Unlock()

	fail := func(what string, err error) {
		r.Updates <- OutputUpdate(fmt.Sprintf("Error %s: %v", what, err))
		r.Updates <- StatusUpdate{Spec: job.Spec, Err: err}
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		fail("creating stdout pipe", err)
		return
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		fail("creating stderr pipe", err)
		return
	}

	if err := cmd.Start(); err != nil {
		fail("starting command", err)
		return
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		r.streamReader(stdout)
	}()
	go func() {
		defer wg.Done()
		r.streamReader(stderr)
	}()

	go func() {
		// Pipes must be drained before Wait closes them.
		wg.Wait()
		err := cmd.Wait()

		r.mu.Lock()
		current := r.currCmd == cmd
		if current {
			r.currCmd = nil
			r.cancel = nil
		}
		r.mu.Unlock()

		if current {
			r.Updates <- StatusUpdate{Spec: job.Spec, Err: err}
		}
	}()
}

func (r *Runner) streamReader(rd io.Reader) {
	scanner := bufio.NewScanner(rd)
	for scanner.Scan() {
		r.Updates <- OutputUpdate(scanner.Text())
	}
}

// Kill explicitly stops the current command
func (r *Runner) Kill() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.cancel()
	}
}
