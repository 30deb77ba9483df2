// Package player owns the external audio player process: at most one lives
// at a time, and switching stations fully stops the old process before the
// new one starts.
package player

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/mwren/radiola/internal/domain"
	"github.com/mwren/radiola/internal/opml"
)

// State of the playback session
type State int

const (
	Idle State = iota
	Starting
	Playing
	Stopping
)

// String returns a human-readable state name
func (s State) String() string {
	switch s {
	case Starting:
		return "starting"
	case Playing:
		return "playing"
	case Stopping:
		return "stopping"
	default:
		return "idle"
	}
}

// stopTimeout bounds the wait after SIGTERM before escalating to SIGKILL
const stopTimeout = 3 * time.Second

// ExitEvent is emitted when the player process exits on its own (stream
// ended, network drop). Stops requested through the session do not emit.
type ExitEvent struct {
	URL string
	Err error
}

// Session tracks the single external player process
type Session struct {
	command string
	args    []string
	logger  *slog.Logger
	socket  string // mpv IPC socket path, empty for other players

	mu   sync.Mutex // serializes Play/Stop; held across the stop wait
	proc *exec.Cmd
	done chan struct{} // closed by the watcher when the process exits
	gen  uint64        // bumped on every Play/Stop to invalidate stale watchers

	// Status snapshot on its own lock, never held across a wait, so the
	// render loop can read state while a slow stop is in progress.
	stmu  sync.Mutex
	state State
	url   string
	title string

	exits chan ExitEvent
}

// NewSession creates a playback session for the given player command. An
// empty command defaults to mpv.
func NewSession(command string, args []string, logger *slog.Logger) *Session {
	if command == "" {
		command = "mpv"
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &Session{
		command: command,
		args:    args,
		logger:  logger,
		exits:   make(chan ExitEvent, 4),
	}
	if s.isMpv() {
		s.socket = filepath.Join(os.TempDir(), fmt.Sprintf("radiola-mpv-%d.sock", os.Getpid()))
	}
	return s
}

func (s *Session) isMpv() bool {
	base := strings.ToLower(filepath.Base(s.command))
	return strings.TrimSuffix(base, filepath.Ext(base)) == "mpv"
}

// Exits delivers asynchronous process-exit notifications. The UI drains this
// so a dead player never shows a stale "playing" status.
func (s *Session) Exits() <-chan ExitEvent {
	return s.exits
}

// Status returns the current state and the title passed to Play
func (s *Session) Status() (State, string) {
	s.stmu.Lock()
	defer s.stmu.Unlock()
	return s.state, s.title
}

// URL returns the stream URL of the active session, if any
func (s *Session) URL() string {
	s.stmu.Lock()
	defer s.stmu.Unlock()
	return s.url
}

func (s *Session) setStatus(state State, url, title string) {
	s.stmu.Lock()
	s.state = state
	s.url = url
	s.title = title
	s.stmu.Unlock()
}

func (s *Session) setState(state State) {
	s.stmu.Lock()
	s.state = state
	s.stmu.Unlock()
}

// Play stops any active playback, then spawns the player with url as its
// target. Spawn failure returns *domain.PlaybackError and leaves the
// session Idle; it is reported, never fatal.
func (s *Session) Play(url, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()

	url = opml.UpgradeURL(url)
	s.setStatus(Starting, url, title)

	args := append([]string{}, s.args...)
	if s.socket != "" {
		args = append(args, "--input-ipc-server="+s.socket)
	}
	args = append(args, url)

	cmd := exec.Command(s.command, args...)
	if err := cmd.Start(); err != nil {
		s.setStatus(Idle, "", "")
		s.logger.Error("failed to spawn player", "command", s.command, "error", err)
		return &domain.PlaybackError{URL: url, Err: err}
	}

	s.proc = cmd
	s.setStatus(Playing, url, title)
	s.done = make(chan struct{})
	s.gen++

	s.logger.Info("player started", "command", s.command, "url", url, "pid", cmd.Process.Pid)
	go s.watch(cmd, s.gen, url, s.done)
	return nil
}

// watch reaps the process and reports exits that the session did not request
func (s *Session) watch(cmd *exec.Cmd, gen uint64, url string, done chan struct{}) {
	err := cmd.Wait()
	close(done)

	s.mu.Lock()
	stale := gen != s.gen
	if !stale {
		s.proc = nil
		s.setStatus(Idle, "", "")
	}
	s.mu.Unlock()

	if stale {
		return
	}
	s.logger.Info("player exited", "url", url, "error", err)
	select {
	case s.exits <- ExitEvent{URL: url, Err: err}:
	default:
	}
}

// Stop terminates the active player, waiting for it to exit. No-op when
// Idle.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

// stopLocked sends SIGTERM, waits a bounded time, escalates to SIGKILL, and
// only returns once the process is reaped. Bumping gen first silences the
// watcher for this process.
func (s *Session) stopLocked() {
	if s.proc == nil || s.proc.Process == nil {
		s.setState(Idle)
		return
	}

	s.setState(Stopping)
	s.gen++
	done := s.done

	if err := s.proc.Process.Signal(syscall.SIGTERM); err != nil {
		s.proc.Process.Kill()
	}
	select {
	case <-done:
	case <-time.After(stopTimeout):
		s.logger.Warn("player unresponsive to SIGTERM, killing", "pid", s.proc.Process.Pid)
		s.proc.Process.Kill()
		<-done
	}

	s.proc = nil
	s.setStatus(Idle, "", "")
	if s.socket != "" {
		os.Remove(s.socket)
	}
}
