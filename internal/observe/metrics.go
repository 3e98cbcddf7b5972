// Package observe records OpenTelemetry metrics for game sessions.
//
// Tests should use [NewMetrics] with their own [metric.MeterProvider];
// [DefaultMetrics] is bound to the global provider.
package observe

import (
	"context"
	"sync"

	"github.com/magefree/mage-tale-go/internal/game"
	"github.com/magefree/mage-tale-go/internal/game/rules"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/magefree/mage-tale-go"

// Metrics holds the metric instruments for a running game.
type Metrics struct {
	// BusEvents counts events published on the bus. Attribute: event_type.
	BusEvents metric.Int64Counter

	// SessionsStarted counts StartNewGame calls that succeeded.
	SessionsStarted metric.Int64Counter

	// EventsDrawn counts draw requests. Attribute: drawn (bool).
	EventsDrawn metric.Int64Counter

	// Choices counts resolved choices. Attributes: outcome_id, status
	// (passed, failed or skipped).
	Choices metric.Int64Counter

	// ContentWarnings counts missing item data met while applying outcomes.
	ContentWarnings metric.Int64Counter
}

// NewMetrics creates the instruments on mp.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.BusEvents, err = m.Int64Counter("tale.bus.events",
		metric.WithDescription("Events published on the game event bus by type."),
	); err != nil {
		return nil, err
	}
	if met.SessionsStarted, err = m.Int64Counter("tale.sessions.started",
		metric.WithDescription("Sessions started."),
	); err != nil {
		return nil, err
	}
	if met.EventsDrawn, err = m.Int64Counter("tale.events.drawn",
		metric.WithDescription("Event draw requests, split by whether a card was drawn."),
	); err != nil {
		return nil, err
	}
	if met.Choices, err = m.Int64Counter("tale.choices",
		metric.WithDescription("Resolved choices by outcome and status."),
	); err != nil {
		return nil, err
	}
	if met.ContentWarnings, err = m.Int64Counter("tale.content.warnings",
		metric.WithDescription("Missing content met while applying outcomes."),
	); err != nil {
		return nil, err
	}
	return met, nil
}

var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns metrics bound to the global meter provider.
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// Attach counts every event type published on bus. The returned function
// detaches all listeners.
func Attach(bus *rules.EventBus, m *Metrics) rules.Unsubscribe {
	unsubs := make([]rules.Unsubscribe, 0, len(rules.AllEventTypes))
	for _, et := range rules.AllEventTypes {
		attrs := metric.WithAttributes(attribute.String("event_type", string(et)))
		unsubs = append(unsubs, bus.Subscribe(et, func(rules.Event) {
			m.BusEvents.Add(context.Background(), 1, attrs)
		}))
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

var _ game.Observer = (*Metrics)(nil)

// SessionStarted implements game.Observer.
func (m *Metrics) SessionStarted() {
	m.SessionsStarted.Add(context.Background(), 1)
}

// EventDrawn implements game.Observer.
func (m *Metrics) EventDrawn(drawn bool) {
	m.EventsDrawn.Add(context.Background(), 1, metric.WithAttributes(attribute.Bool("drawn", drawn)))
}

// ChoiceResolved implements game.Observer.
func (m *Metrics) ChoiceResolved(res game.Resolution) {
	ctx := context.Background()
	status := "failed"
	switch {
	case res.Skipped:
		status = "skipped"
	case res.Passed:
		status = "passed"
	}
	m.Choices.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome_id", res.OutcomeID),
		attribute.String("status", status),
	))
	if n := len(res.Warnings); n > 0 {
		m.ContentWarnings.Add(ctx, int64(n), metric.WithAttributes(attribute.String("outcome_id", res.OutcomeID)))
	}
}
