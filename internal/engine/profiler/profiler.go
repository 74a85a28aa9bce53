// Package profiler collects per-section frame timings and periodically
// reports them together with runtime memory statistics.
package profiler

import (
	"runtime"
	"time"

	"go.uber.org/zap"
)

// SectionID identifies a registered timing section. IDs are dense small
// integers handed out by Section, so they index directly into the
// accumulator slices and compare by value.
type SectionID int

type section struct {
	name    string
	started time.Time
	total   time.Duration
	count   int
}

// Profiler accumulates section timings between reports. It is not safe
// for concurrent use; all calls happen on the render thread.
type Profiler struct {
	log      *zap.Logger
	enabled  bool
	interval time.Duration

	sections []section

	frames     int
	lastReport time.Time
	lastAllocs uint64
}

// New creates a profiler reporting every interval. A disabled profiler
// accepts all calls and does nothing.
func New(log *zap.Logger, enabled bool, interval time.Duration) *Profiler {
	if log == nil {
		log = zap.NewNop()
	}
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &Profiler{
		log:        log,
		enabled:    enabled,
		interval:   interval,
		lastReport: time.Now(),
	}
}

// Section registers a named timing section and returns its ID. Call once
// per section at startup; the returned ID is used for Begin and End.
func (p *Profiler) Section(name string) SectionID {
	p.sections = append(p.sections, section{name: name})
	return SectionID(len(p.sections) - 1)
}

// Begin marks the start of a section for the current frame.
func (p *Profiler) Begin(id SectionID) {
	if !p.enabled {
		return
	}
	p.sections[id].started = time.Now()
}

// End accumulates the elapsed time since the matching Begin.
func (p *Profiler) End(id SectionID) {
	if !p.enabled {
		return
	}
	s := &p.sections[id]
	s.total += time.Since(s.started)
	s.count++
}

// Tick counts a completed frame and emits a report once per interval:
// frame rate, average section timings and heap statistics.
func (p *Profiler) Tick() {
	if !p.enabled {
		return
	}
	p.frames++

	elapsed := time.Since(p.lastReport)
	if elapsed < p.interval {
		return
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	allocRate := float64(mem.TotalAlloc-p.lastAllocs) / elapsed.Seconds()
	fields := []zap.Field{
		zap.Float64("fps", float64(p.frames)/elapsed.Seconds()),
		zap.Uint64("heap_mb", mem.HeapAlloc/(1024*1024)),
		zap.Float64("alloc_mb_per_s", allocRate/(1024*1024)),
		zap.Uint32("gc_cycles", mem.NumGC),
	}
	for i := range p.sections {
		s := &p.sections[i]
		if s.count == 0 {
			continue
		}
		avg := s.total / time.Duration(s.count)
		fields = append(fields, zap.Duration(s.name, avg))
		s.total = 0
		s.count = 0
	}

	p.log.Info("frame stats", fields...)

	p.frames = 0
	p.lastReport = time.Now()
	p.lastAllocs = mem.TotalAlloc
}
