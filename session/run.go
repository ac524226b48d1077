package session

import (
	"context"
	"log"
	"strings"
)

// Process is a project started in the background by Start.
type Process struct {
	cancel context.CancelFunc
	done   chan error
}

// Start regenerates the stub and starts the project's run command without
// waiting for it. Each Process reports its own exit.
func (s *Session) Start(ctx context.Context) (*Process, error) {
	if _, err := s.Generate(); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(ctx)
	cmd, err := s.Settings.RunCommand(ctx, s.Root)
	if err != nil {
		cancel()
		return nil, err
	}
	cmd.Stdout = s.Stdout
	cmd.Stderr = s.Stderr
	log.Printf("Running %s", strings.Join(cmd.Args, " "))
	if err := cmd.Start(); err != nil {
		cancel()
		return nil, err
	}
	p := &Process{cancel: cancel, done: make(chan error, 1)}
	go func() {
		p.done <- cmd.Wait()
		cancel()
	}()
	return p, nil
}

// Done receives the command's exit error once it has finished.
func (p *Process) Done() <-chan error { return p.done }

// Stop kills the command. Its exit is still delivered on Done.
func (p *Process) Stop() { p.cancel() }
