package project

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// statInterval backs up fsnotify on filesystems that drop events.
const statInterval = 250 * time.Millisecond

// Scaffold creates a new project at root: it runs the configured scaffolder,
// waits (bounded by settings.Scaffold.Timeout) for the manifest to appear,
// adds the runtime requirement, writes stub to src/main.go, creates the asset
// directories and writes a default config.
func Scaffold(ctx context.Context, root string, settings Settings, stub []byte) (*Config, error) {
	sc := settings.Scaffold
	if len(sc.Command) == 0 {
		return nil, errors.New("project: no scaffold command configured")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("project: create %s: %w", root, err)
	}

	ctx, cancel := context.WithTimeout(ctx, sc.Timeout)
	defer cancel()

	argv := expandArgs(sc.Command, map[string]string{"module": sc.ModuleName(root)})
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = root
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("project: start %s: %w", argv[0], err)
	}
	exited := make(chan error, 1)
	done := make(chan struct{})
	go func() {
		exited <- cmd.Wait()
		close(done)
	}()

	manifest := filepath.Join(root, sc.Manifest)
	if err := waitForFile(ctx, manifest, exited); err != nil {
		cancel()
		<-done
		if out.Len() > 0 {
			log.Printf("scaffold: %s", strings.TrimSpace(out.String()))
		}
		return nil, err
	}
	// let the scaffolder finish writing before the manifest is patched
	select {
	case <-done:
	case <-ctx.Done():
		return nil, waitErr(ctx, manifest)
	}

	if sc.Require != "" {
		if err := appendLine(manifest, sc.Require); err != nil {
			return nil, err
		}
	}

	for _, dir := range []string{"assets", filepath.Join(SourceDir, "scripts"), filepath.Join(SourceDir, "assets")} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			return nil, fmt.Errorf("project: create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(filepath.Join(root, SourceDir, "main.go"), stub, 0o644); err != nil {
		return nil, fmt.Errorf("project: write stub: %w", err)
	}

	cfg := NewConfig()
	if err := cfg.Save(root); err != nil {
		return cfg, err
	}
	log.Printf("Scaffolded project at %s", root)
	return cfg, nil
}

// WaitForFile blocks until path exists, ctx is cancelled or timeout passes.
func WaitForFile(ctx context.Context, path string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return waitForFile(ctx, path, nil)
}

// waitForFile watches path's directory. A non-nil error on exited (the
// producing process failed) ends the wait early.
func waitForFile(ctx context.Context, path string, exited <-chan error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("project: watch: %w", err)
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("project: watch %s: %w", filepath.Dir(path), err)
	}

	// checked after Add so a file created in between is not missed
	if fileExists(path) {
		return nil
	}

	ticker := time.NewTicker(statInterval)
	defer ticker.Stop()
	clean := filepath.Clean(path)
	for {
		select {
		case event, ok := <-w.Events:
			if !ok {
				return fmt.Errorf("project: watcher closed waiting for %s", path)
			}
			if filepath.Clean(event.Name) == clean && event.Op&(fsnotify.Create|fsnotify.Write) != 0 && fileExists(path) {
				return nil
			}
		case err, ok := <-w.Errors:
			if ok {
				log.Printf("scaffold: watch error: %v", err)
			}
		case <-ticker.C:
			if fileExists(path) {
				return nil
			}
		case err := <-exited:
			if err != nil && ctx.Err() != nil {
				return waitErr(ctx, path)
			}
			if err != nil {
				return fmt.Errorf("project: scaffolder failed: %w", err)
			}
			if fileExists(path) {
				return nil
			}
			exited = nil
		case <-ctx.Done():
			return waitErr(ctx, path)
		}
	}
}

func waitErr(ctx context.Context, path string) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s", ErrScaffoldTimeout, path)
	}
	return ctx.Err()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func appendLine(path, line string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("project: read %s: %w", path, err)
	}
	if bytes.Contains(b, []byte(line)) {
		return nil
	}
	if len(b) > 0 && !bytes.HasSuffix(b, []byte("\n")) {
		b = append(b, '\n')
	}
	b = append(b, '\n')
	b = append(b, line...)
	b = append(b, '\n')
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("project: write %s: %w", path, err)
	}
	return nil
}

// RunCommand returns the configured run command for the project at root.
func (s Settings) RunCommand(ctx context.Context, root string) (*exec.Cmd, error) {
	if len(s.Run.Command) == 0 {
		return nil, errors.New("project: no run command configured")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	argv := expandArgs(s.Run.Command, map[string]string{
		"manifest": filepath.Join(abs, s.Scaffold.Manifest),
	})
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = abs
	return cmd, nil
}
