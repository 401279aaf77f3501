package collector

import (
	"context"
	"sync"

	"letterbox/internal/logging"
	"letterbox/internal/puzzle"
)

// View is the widget surface a Collector drives. Implementations wrap
// DOM elements, terminal widgets or test fakes. Cells are addressed by
// their order, 0..CellCount()-1.
type View interface {
	CellCount() int
	CellValue(i int) string
	SetCellValue(i int, v string)
	FocusCell(i int)

	// SetBusy disables the submit control and shows BusyLabel, or
	// re-enables it with SubmitLabel.
	SetBusy(busy bool)

	ClearResults()
	ShowResults(visible bool)
	AppendSolution(chain, score string)

	// Alert shows a non-blocking message to the user.
	Alert(msg string)
}

// Options configures a Collector.
type Options struct {
	// PromptOnIncomplete alerts the user instead of silently ignoring a
	// submit with empty cells.
	PromptOnIncomplete bool
	// Separator joins the words of a rendered chain.
	Separator string
	// Dispatch runs the network round trip off the event handler.
	// Defaults to a new goroutine.
	Dispatch func(func())
}

// Collector is the event-driven Input Collector & Result Renderer. Its
// handlers are meant to be called from a single UI event loop; only the
// solve round trip runs elsewhere, via Options.Dispatch.
type Collector struct {
	view   View
	solver Solver
	opts   Options
	gate   *Gate

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu    sync.Mutex
	ready bool
	phase Phase
	gen   uint64
	last  Outcome
}

// New creates a Collector. It does nothing until Init succeeds.
func New(ctx context.Context, view View, s Solver, opts Options) *Collector {
	if opts.Separator == "" {
		opts.Separator = puzzle.DefaultSeparator
	}
	if opts.Dispatch == nil {
		opts.Dispatch = func(fn func()) { go fn() }
	}
	ctx, cancel := context.WithCancel(ctx)
	return &Collector{
		view:   view,
		solver: s,
		opts:   opts,
		gate:   NewGate(),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Init checks the view and focuses the first cell. A view without exactly
// 12 cells leaves the collector inert; that is not an error.
func (c *Collector) Init() bool {
	if c.view == nil || c.view.CellCount() != puzzle.CellCount {
		n := 0
		if c.view != nil {
			n = c.view.CellCount()
		}
		logging.BootDebug("collector inert: found %d letter cells", n)
		return false
	}
	c.mu.Lock()
	c.ready = true
	c.mu.Unlock()
	c.view.FocusCell(0)
	logging.Boot("collector ready")
	return true
}

func (c *Collector) isReady() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ready
}

// Phase returns the current phase of the solve operation.
func (c *Collector) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Last returns the most recent outcome.
func (c *Collector) Last() Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

func (c *Collector) setPhase(p Phase) {
	c.mu.Lock()
	c.phase = p
	c.mu.Unlock()
}

// KeyPress filters a keystroke before it reaches cell i. It returns false
// when the key must be dropped.
func (c *Collector) KeyPress(i int, key string) bool {
	ok := puzzle.AcceptKey(key)
	if !ok {
		logging.InputDebug("cell %d: rejected key %q", i, key)
	}
	return ok
}

// KeyDown handles Enter in any cell by submitting. It returns true when
// the key was consumed.
func (c *Collector) KeyDown(i int, key string) bool {
	if key != "Enter" {
		return false
	}
	c.Submit()
	return true
}

// Input reacts to a changed cell value: the value is normalized and, when
// it holds a letter, focus moves to the next cell, wrapping after the last.
func (c *Collector) Input(i int) {
	if !c.isReady() || i < 0 || i >= puzzle.CellCount {
		return
	}
	raw := c.view.CellValue(i)
	v, ok := puzzle.Normalize(lastRune(raw))
	if !ok {
		v = ""
	}
	if v != raw {
		c.view.SetCellValue(i, v)
	}
	if v != "" {
		c.view.FocusCell((i + 1) % puzzle.CellCount)
	}
}

// Submit starts a solve unless one is already pending.
func (c *Collector) Submit() {
	if !c.isReady() {
		return
	}
	if !c.gate.TryEnter() {
		logging.SolveDebug("submit ignored: solve already pending")
		return
	}

	c.setPhase(Validating)
	cells := make([]string, puzzle.CellCount)
	for i := range cells {
		cells[i] = c.view.CellValue(i)
	}
	p, aborted := Validate(cells, c.opts.PromptOnIncomplete)
	if aborted != nil {
		c.mu.Lock()
		c.last = *aborted
		c.phase = Idle
		c.mu.Unlock()
		c.gate.Leave()
		if msg := aborted.Message(); msg != "" {
			c.view.Alert(msg)
		}
		return
	}

	c.setPhase(Loading)
	c.view.SetBusy(true)
	c.view.ShowResults(false)
	c.view.ClearResults()

	c.mu.Lock()
	gen := c.gen
	c.mu.Unlock()

	c.wg.Add(1)
	c.opts.Dispatch(func() {
		defer c.wg.Done()
		defer c.gate.Leave()
		defer c.view.SetBusy(false)

		out := Run(c.ctx, c.solver, p)
		c.finish(gen, out)
	})
}

func (c *Collector) finish(gen uint64, out Outcome) {
	c.mu.Lock()
	stale := gen != c.gen
	c.last = out
	c.phase = Idle
	c.mu.Unlock()

	if stale {
		logging.RenderDebug("discarding outcome for %s: cleared while loading", out.Puzzle)
		return
	}

	switch out.Phase {
	case Rendered:
		c.view.ClearResults()
		for _, s := range out.Solutions {
			c.view.AppendSolution(s.Chain(c.opts.Separator), s.ScoreLabel())
		}
		c.view.ShowResults(true)
		logging.Render("rendered %d solution(s)", len(out.Solutions))
	case ErrorShown:
		c.view.Alert(out.Message())
	}
}

// Clear empties all cells, removes rendered results, hides the results
// container and refocuses the first cell. A solve still in flight is
// left to finish but its result is dropped.
func (c *Collector) Clear() {
	if !c.isReady() {
		return
	}
	c.mu.Lock()
	c.gen++
	c.last = Outcome{}
	c.mu.Unlock()

	for i := 0; i < puzzle.CellCount; i++ {
		c.view.SetCellValue(i, "")
	}
	c.view.ClearResults()
	c.view.ShowResults(false)
	c.view.FocusCell(0)
	logging.Input("grid cleared")
}

// Fill loads p into the cells.
func (c *Collector) Fill(p puzzle.Puzzle) {
	if !c.isReady() {
		return
	}
	for i, r := range p.Letters() {
		if i >= puzzle.CellCount {
			break
		}
		c.view.SetCellValue(i, string(r))
	}
	c.view.FocusCell(0)
}

// Wait blocks until any in-flight solve has finished.
func (c *Collector) Wait() {
	c.wg.Wait()
}

// Close cancels an in-flight solve and waits for it.
func (c *Collector) Close() {
	c.cancel()
	c.wg.Wait()
}

func lastRune(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return ""
	}
	return string(r[len(r)-1])
}
