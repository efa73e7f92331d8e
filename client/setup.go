package client

import (
	"runtime"
	"sync/atomic"
	"time"

	"github.com/aalemi-dev/scopekit/event"
	"github.com/aalemi-dev/scopekit/logger"
)

// LogClient is a Client that writes every captured event to the structured
// logger as encoded JSON.
type LogClient struct {
	cfg      Config
	opts     Options
	log      *logger.LoggerClient
	captured atomic.Uint64
	dropped  atomic.Uint64
	closed   atomic.Bool
}

// NewLogClient returns a LogClient for cfg.
func NewLogClient(cfg Config, log *logger.LoggerClient) *LogClient {
	return &LogClient{
		cfg:  cfg,
		opts: cfg.Options(),
		log:  log,
	}
}

// SetTracesSampler installs a per-transaction sampler. It must be called
// before the client is shared.
func (c *LogClient) SetTracesSampler(s TracesSampler) {
	c.opts.TracesSampler = s
}

// IsActive reports whether the client is enabled and not closed.
func (c *LogClient) IsActive() bool {
	return c.cfg.Enabled && !c.closed.Load()
}

// Options returns the client options.
func (c *LogClient) Options() Options {
	return c.opts
}

// CaptureEvent stamps client defaults onto e, encodes it and logs it.
func (c *LogClient) CaptureEvent(e *event.Event) (event.ID, bool) {
	if e == nil || !c.IsActive() {
		c.dropped.Add(1)
		return "", false
	}

	c.prepareEvent(e)

	payload, err := event.Encode(e)
	if err != nil {
		c.dropped.Add(1)
		c.log.Error("failed to encode event", err, map[string]interface{}{
			"event_id": string(e.EventID),
		})
		return "", false
	}

	fields := map[string]interface{}{
		"event_id": string(e.EventID),
		"type":     e.Type,
		"payload":  string(payload),
	}
	if c.cfg.Debug {
		fields["level"] = string(e.Level)
		fields["transaction"] = e.Transaction
	}
	c.log.Info("event captured", nil, fields)
	c.captured.Add(1)

	return e.EventID, true
}

// Captured returns the number of events accepted so far.
func (c *LogClient) Captured() uint64 {
	return c.captured.Load()
}

// Dropped returns the number of events rejected so far.
func (c *LogClient) Dropped() uint64 {
	return c.dropped.Load()
}

// Close deactivates the client. Later captures are dropped.
func (c *LogClient) Close() {
	c.closed.Store(true)
}

func (c *LogClient) prepareEvent(e *event.Event) {
	if e.EventID == "" {
		e.EventID = event.NewID()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	if e.Platform == "" {
		e.Platform = "go"
	}
	if e.Environment == "" {
		e.Environment = c.opts.Environment
	}
	if e.Release == "" {
		e.Release = c.opts.Release
	}
	if e.ServerName == "" {
		e.ServerName = c.opts.ServerName
	}
	if _, ok := e.Contexts["runtime"]; !ok && !e.IsTransaction() {
		if e.Contexts == nil {
			e.Contexts = make(map[string]event.Context)
		}
		e.Contexts["runtime"] = event.Context{
			"name":    "go",
			"version": runtime.Version(),
		}
	}
}
