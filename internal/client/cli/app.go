package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/luggify/internal/client/models"
	"github.com/dmitrijs2005/luggify/internal/client/services"
	"github.com/dmitrijs2005/luggify/internal/client/session"
	"github.com/dmitrijs2005/luggify/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// Option configures an App.
type Option func(*App)

// WithIO replaces stdin and stdout.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(a *App) {
		a.reader = bufio.NewReader(in)
		a.out = out
	}
}

// WithInteractive forces prompts on or off instead of asking the terminal.
func WithInteractive(on bool) Option {
	return func(a *App) { a.interactive = &on }
}

// WithOnlineCheckInterval sets how often the status watcher probes the
// backend. Zero disables the watcher.
func WithOnlineCheckInterval(d time.Duration) Option {
	return func(a *App) { a.interval = d }
}

type App struct {
	checklists  services.ChecklistService
	prefs       services.PreferencesService
	conn        services.Connectivity
	logger      logging.Logger
	reader      *bufio.Reader
	out         io.Writer
	interval    time.Duration
	interactive *bool

	mu       sync.Mutex
	mode     Mode
	session  *session.Session
	lastList []models.Checklist
}

func NewApp(cs services.ChecklistService, ps services.PreferencesService, conn services.Connectivity, logger logging.Logger, opts ...Option) *App {
	if logger == nil {
		logger = logging.Nop()
	}
	a := &App{
		checklists: cs,
		prefs:      ps,
		conn:       conn,
		logger:     logger.With("module", "cli"),
		reader:     bufio.NewReader(os.Stdin),
		out:        os.Stdout,
		interval:   3 * time.Second,
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

func (a *App) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.logger.Info(ctx, fmt.Sprintf("Switched to %s mode", mode))
	}
}

func (a *App) current() *session.Session {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session
}

// setSession makes s the open checklist, closing the previous one.
func (a *App) setSession(s *session.Session) {
	a.mu.Lock()
	prev := a.session
	a.session = s
	a.mu.Unlock()

	if prev != nil && prev != s {
		prev.Close()
	}
}

func (a *App) hasOpen() bool { return a.current() != nil }

func (a *App) isInteractive() bool {
	if a.interactive != nil {
		return *a.interactive
	}
	return isTerminal(int(os.Stdin.Fd()))
}

// promptOut is where prompts go; they are dropped for piped input.
func (a *App) promptOut() io.Writer {
	if a.isInteractive() {
		return a.out
	}
	return io.Discard
}

func (a *App) getStatus() string {
	s := string(a.Mode())
	if sess := a.current(); sess != nil {
		snap := sess.Snapshot()
		s = fmt.Sprintf("%s %s %s", s, snap.Checklist.Slug, snap.State)
	}
	return fmt.Sprintf("(%s)", s)
}

// Run checks connectivity once, starts the status watcher and blocks in the
// REPL until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer a.setSession(nil)

	a.refreshMode(ctx)
	if a.interval > 0 {
		go a.StartOnlineStatusWatcher(ctx, a.interval)
	}

	fmt.Fprintln(a.promptOut(), "Welcome to Luggify CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader, a.isInteractive())
}

func (a *App) refreshMode(ctx context.Context) {
	if a.conn.IsOnline(ctx) {
		a.setMode(ctx, ModeOnline)
	} else {
		a.setMode(ctx, ModeOffline)
	}
}

// StartOnlineStatusWatcher keeps Mode current until ctx is done. It only
// updates the displayed status; it never starts a sync.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.refreshMode(ctx)
		case <-ctx.Done():
			return
		}
	}
}
