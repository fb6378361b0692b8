package engine

import (
	"context"
	"io"
	"os"
	"sync"
	"time"

	"iceberg_farmer/internal/console"
	"iceberg_farmer/internal/logbus"
	"iceberg_farmer/internal/model"
	"iceberg_farmer/internal/notify"
	"iceberg_farmer/internal/provider"
	"iceberg_farmer/internal/utils"
)

const (
	maxAdViews   = 20
	maxAdRetries = 3
)

// Pacing holds the human-like waits between remote actions. The ad network
// checks the render/show/reward spacing, so the defaults are part of the
// contract with it.
type Pacing struct {
	TaskDwell     time.Duration
	TaskGap       time.Duration
	AdRenderDwell time.Duration
	AdShowDwell   time.Duration
	AdGap         time.Duration
	AdRetryWait   time.Duration
	AccountPause  time.Duration
}

func DefaultPacing() Pacing {
	return Pacing{
		TaskDwell:     5 * time.Second,
		TaskGap:       2 * time.Second,
		AdRenderDwell: 5 * time.Second,
		AdShowDwell:   10 * time.Second,
		AdGap:         2 * time.Second,
		AdRetryWait:   2 * time.Second,
		AccountPause:  time.Second,
	}
}

// Journal records finished passes.
type Journal interface {
	SavePassReport(ctx context.Context, report model.PassReport) error
}

type Options struct {
	Provider provider.Provider
	Bus      *logbus.Bus
	Pacing   Pacing
	// VerifyProxy requires a successful exit-IP check before a proxied account runs.
	VerifyProxy     bool
	CooldownSeconds int

	Journal  Journal
	Notifier notify.Notifier

	// Sleep, Now and Countdown default to wall-clock implementations.
	Sleep     utils.SleepFunc
	Now       func() time.Time
	Countdown func(ctx context.Context, seconds int) error
	Output    io.Writer
}

type Engine struct {
	provider provider.Provider
	bus      *logbus.Bus
	pacing   Pacing
	journal  Journal
	notifier notify.Notifier

	verifyProxy     bool
	cooldownSeconds int

	sleep     utils.SleepFunc
	now       func() time.Time
	countdown func(ctx context.Context, seconds int) error

	mu       sync.Mutex
	running  bool
	passes   int
	lastPass *model.PassReport
}

func New(opts Options) *Engine {
	e := &Engine{
		provider:        opts.Provider,
		bus:             opts.Bus,
		pacing:          opts.Pacing,
		journal:         opts.Journal,
		notifier:        opts.Notifier,
		verifyProxy:     opts.VerifyProxy,
		cooldownSeconds: opts.CooldownSeconds,
		sleep:           opts.Sleep,
		now:             opts.Now,
		countdown:       opts.Countdown,
	}
	if e.bus == nil {
		e.bus = logbus.New(200)
	}
	if e.sleep == nil {
		e.sleep = utils.Sleep
	}
	if e.now == nil {
		e.now = time.Now
	}
	if e.cooldownSeconds <= 0 {
		e.cooldownSeconds = 6 * 60
	}
	if e.countdown == nil {
		out := opts.Output
		if out == nil {
			out = os.Stdout
		}
		sleep := e.sleep
		e.countdown = func(ctx context.Context, seconds int) error {
			return console.Countdown(ctx, out, seconds, sleep)
		}
	}
	return e
}

func (e *Engine) State() model.EngineState {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := model.EngineState{Running: e.running, Passes: e.passes}
	if e.lastPass != nil {
		cp := *e.lastPass
		out.LastPass = &cp
	}
	return out
}

func (e *Engine) setRunning(v bool) {
	e.mu.Lock()
	e.running = v
	e.mu.Unlock()
}

func (e *Engine) log(level string, acc model.Account, msg string, fields map[string]any) {
	if fields == nil {
		fields = make(map[string]any, 1)
	}
	fields["account"] = acc.Index + 1
	e.bus.Log(level, msg, fields)
}
