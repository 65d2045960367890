package codec

import (
	"fmt"
	"log/slog"

	"github.com/segmentio/ksuid"
)

// Limits bound a decoded integer. Values outside [Min, Max] are hard
// anomalies; values outside [WarnMin, WarnMax] only draw a warning.
type Limits struct {
	Min     int `yaml:"min"`
	Max     int `yaml:"max"`
	WarnMin int `yaml:"warn_min"`
	WarnMax int `yaml:"warn_max"`
}

// Bounds groups the limits applied to each class of checked value.
type Bounds struct {
	Count      Limits `yaml:"count"`
	Version    Limits `yaml:"version"`
	Cash       Limits `yaml:"cash"`
	SlotBudget Limits `yaml:"slot_budget"`
}

// DefaultMaxAnomalies is how many hard anomalies a session tolerates.
const DefaultMaxAnomalies = 3

// DefaultBounds returns the built-in limits.
func DefaultBounds() Bounds {
	return Bounds{
		Count:      Limits{Min: -1000, Max: 10000, WarnMin: 0, WarnMax: 4096},
		Version:    Limits{Min: 0, Max: 100, WarnMin: 0, WarnMax: 50},
		Cash:       Limits{Min: 0, Max: 100_000_000, WarnMin: 0, WarnMax: 100_000_000},
		SlotBudget: Limits{Min: 0, Max: 10_000_000, WarnMin: 0, WarnMax: 10_000_000},
	}
}

// SessionOptions configure a decode or encode session. Zero fields take
// their defaults.
type SessionOptions struct {
	Logger       *slog.Logger
	MaxAnomalies int
	Bounds       Bounds
}

// Session is the per-conversion context threaded through every decoder: it
// owns the anomaly counter, the logger and the collected warnings. A
// Session is not safe for concurrent use; create one per conversion.
type Session struct {
	ID ksuid.KSUID

	log          *slog.Logger
	maxAnomalies int
	bounds       Bounds
	anomalies    int
	warnings     []string
}

// NewSession creates a session with a fresh ksuid.
func NewSession(opts SessionOptions) *Session {
	id := ksuid.New()
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	limit := opts.MaxAnomalies
	if limit <= 0 {
		limit = DefaultMaxAnomalies
	}
	return &Session{
		ID:           id,
		log:          logger.With("session", id.String()),
		maxAnomalies: limit,
		bounds:       opts.Bounds.withDefaults(),
	}
}

func (b Bounds) withDefaults() Bounds {
	d := DefaultBounds()
	if b.Count != (Limits{}) {
		d.Count = b.Count
	}
	if b.Version != (Limits{}) {
		d.Version = b.Version
	}
	if b.Cash != (Limits{}) {
		d.Cash = b.Cash
	}
	if b.SlotBudget != (Limits{}) {
		d.SlotBudget = b.SlotBudget
	}
	return d
}

// Logger returns the session logger tagged with component.
func (s *Session) Logger(component string) *slog.Logger {
	return s.log.With("component", component)
}

func (s *Session) Bounds() Bounds {
	return s.bounds
}

// Anomalies is the number of hard anomalies seen so far.
func (s *Session) Anomalies() int {
	return s.anomalies
}

// Warnings returns every warning recorded during the session, in order.
func (s *Session) Warnings() []string {
	return append([]string(nil), s.warnings...)
}

// Warn logs a non-fatal condition and keeps it for the caller.
func (s *Session) Warn(logger *slog.Logger, msg string, args ...any) {
	if logger == nil {
		logger = s.log
	}
	logger.Warn(msg, args...)
	s.warnings = append(s.warnings, msg)
}

// Check validates v against lim. Hard violations are counted; once the
// count reaches the session limit, any further violation of either kind
// returns an error wrapping ErrAnomalousValue.
func (s *Session) Check(field string, v int, lim Limits) error {
	var (
		hard bool
		msg  string
	)
	switch {
	case v < lim.Min:
		hard, msg = true, "value is too low"
	case v > lim.Max:
		hard, msg = true, "value is too high"
	case v < lim.WarnMin:
		msg = "value is unusually low"
	case v > lim.WarnMax:
		msg = "value is unusually high"
	default:
		return nil
	}

	if s.anomalies >= s.maxAnomalies {
		s.log.Error("aborting after repeated anomalous values", "field", field, "value", v, "anomalies", s.anomalies)
		return fmt.Errorf("%w: %s = %d after %d anomalies", ErrAnomalousValue, field, v, s.anomalies)
	}

	attrs := []any{"field", field, "value", v}
	if hard {
		s.anomalies++
		s.log.Error(msg, append(attrs, "min", lim.Min, "max", lim.Max)...)
	} else {
		s.log.Warn(msg, append(attrs, "warn_min", lim.WarnMin, "warn_max", lim.WarnMax)...)
	}
	s.warnings = append(s.warnings, fmt.Sprintf("%s: %s (%d)", field, msg, v))
	return nil
}
