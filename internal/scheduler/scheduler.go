// Package scheduler drives periodic dashboard refreshes and routes chat
// commands to the dashboard service.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"MarketDashboard/internal/dashboard"

	"github.com/robfig/cron/v3"
)

// PageSource computes a full dashboard page.
type PageSource interface {
	Page(ctx context.Context, req dashboard.PageRequest) (*dashboard.Page, error)
}

// RenderFunc draws one frame.
type RenderFunc func(p *dashboard.Page) error

// Driver re-renders the dashboard on a fixed interval while the market is
// open. The first closed tick renders a final paused frame and stops it.
// A tick still running when the next one is due causes that one to be skipped.
type Driver struct {
	Cron     *cron.Cron
	Source   PageSource
	Request  dashboard.PageRequest
	Render   RenderFunc
	Interval time.Duration
	Ctx      context.Context

	mu       sync.Mutex
	frames   int
	done     chan struct{}
	stopOnce sync.Once
}

// NewDriver creates a Driver. Call Start to render the first frame.
func NewDriver(ctx context.Context, src PageSource, req dashboard.PageRequest, render RenderFunc, every time.Duration) *Driver {
	return &Driver{
		Cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
		Source:   src,
		Request:  req,
		Render:   render,
		Interval: every,
		Ctx:      ctx,
		done:     make(chan struct{}),
	}
}

// Start renders immediately and, when the market is open, schedules
// further refreshes. A failure to build the first frame is returned.
func (d *Driver) Start() error {
	if d.Interval <= 0 {
		return fmt.Errorf("refresh interval must be positive, got %v", d.Interval)
	}
	page, err := d.Source.Page(d.Ctx, d.Request)
	if err != nil {
		return fmt.Errorf("first frame: %w", err)
	}
	d.draw(page)
	if !page.Session.Open {
		log.Println("[INFO] market closed, live updates paused")
		d.Stop()
		return nil
	}

	spec := fmt.Sprintf("@every %s", d.Interval)
	if _, err := d.Cron.AddFunc(spec, func() { d.Tick() }); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	d.Cron.Start()
	log.Printf("[INFO] live updates every %v", d.Interval)
	return nil
}

// Tick re-checks the session and renders one frame. It reports whether
// refreshing continues.
func (d *Driver) Tick() bool {
	select {
	case <-d.done:
		return false
	default:
	}

	page, err := d.Source.Page(d.Ctx, d.Request)
	if err != nil {
		log.Printf("[ERROR] refresh: %v", err)
		return true
	}
	d.draw(page)
	if !page.Session.Open {
		log.Println("[INFO] market closed, live updates paused")
		d.Stop()
		return false
	}
	return true
}

func (d *Driver) draw(page *dashboard.Page) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.Render(page); err != nil {
		log.Printf("[ERROR] render frame: %v", err)
	}
	d.frames++
}

// Frames returns how many frames have been rendered.
func (d *Driver) Frames() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frames
}

// Stop halts refreshing. It is safe to call more than once.
func (d *Driver) Stop() {
	d.stopOnce.Do(func() {
		d.Cron.Stop()
		close(d.done)
		log.Println("[INFO] refresh driver stopped")
	})
}

// Done is closed once the driver stops.
func (d *Driver) Done() <-chan struct{} {
	return d.done
}
