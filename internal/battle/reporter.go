package battle

import (
	"context"
	"log/slog"
)

// Reporter receives every event handled by ProcessEvents, in handling order.
type Reporter interface {
	Report(ev Event)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(ev Event)

func (f ReporterFunc) Report(ev Event) {
	f(ev)
}

// LogReporter writes events to a slog logger.
// Zero value logs to slog.Default at debug level.
type LogReporter struct {
	Logger *slog.Logger
	Level  slog.Level
}

func (r LogReporter) Report(ev Event) {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}

	attrs := []any{"kind", ev.Kind}
	switch ev.Kind {
	case KindDamage, KindHeal:
		attrs = append(attrs, "source", ev.Source, "target", ev.Target, "amount", ev.Amount)
	case KindMiss:
		attrs = append(attrs, "source", ev.Source, "target", ev.Target)
	case KindFainted:
		attrs = append(attrs, "creature", ev.Target)
	case KindCustom:
		attrs = append(attrs, "description", ev.Description)
	}
	logger.Log(context.Background(), r.Level, "battle event", attrs...)
}

// MultiReporter fans an event out to several reporters in order.
type MultiReporter []Reporter

func (m MultiReporter) Report(ev Event) {
	for _, r := range m {
		r.Report(ev)
	}
}
