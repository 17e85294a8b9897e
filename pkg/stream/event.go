package stream

import (
	"fmt"
	"strings"

	"github.com/code-nexus/nexus/pkg/nexus"
)

// EventWorker counts categorical events. Every string item is one event; an
// item equal to "error" (case-insensitive, trimmed) is also an error.
type EventWorker struct {
	id     string
	events int
	errs   int
}

// NewEventWorker creates an event worker with zero counters.
func NewEventWorker(id string) *EventWorker {
	return &EventWorker{id: id}
}

func (w *EventWorker) ID() string   { return w.id }
func (w *EventWorker) Kind() string { return "event" }

// Process counts this batch's events and errors and folds them into the
// cumulative totals. The batch fails only when it is not a sequence, or when
// it is non-empty and contains no string items at all.
func (w *EventWorker) Process(data any) (string, error) {
	batch, ok := asBatch(data)
	if !ok {
		return "", nexus.Validationf("event %s: batch must be a sequence", w.id)
	}

	events := 0
	errs := 0
	for _, item := range batch {
		s, ok := item.(string)
		if !ok {
			continue
		}
		events++
		if strings.EqualFold(strings.TrimSpace(s), "error") {
			errs++
		}
	}
	if len(batch) > 0 && events == 0 {
		return "", nexus.Validationf("event %s: no event labels in batch", w.id)
	}

	w.events += events
	w.errs += errs
	return fmt.Sprintf("%d events, %d error detected", events, errs), nil
}

// Filter keeps events exactly equal to criteria, case-insensitively and
// ignoring surrounding whitespace.
func (w *EventWorker) Filter(data any, criteria string) any {
	want := strings.TrimSpace(criteria)
	return filterItems(data, criteria, func(s string) bool {
		return strings.EqualFold(strings.TrimSpace(s), want)
	})
}

// Stats reports the cumulative event and error counts.
func (w *EventWorker) Stats() map[string]any {
	return map[string]any{
		"id":     w.id,
		"kind":   w.Kind(),
		"events": w.events,
		"errors": w.errs,
	}
}
