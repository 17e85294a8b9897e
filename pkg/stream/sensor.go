package stream

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/code-nexus/nexus/pkg/nexus"
)

// SensorWorker accumulates environmental readings supplied as
// "label:value" items, e.g. "temp:21.5".
type SensorWorker struct {
	id      string
	history []float64
}

// NewSensorWorker creates a sensor worker with an empty reading history.
func NewSensorWorker(id string) *SensorWorker {
	return &SensorWorker{id: id}
}

func (w *SensorWorker) ID() string   { return w.id }
func (w *SensorWorker) Kind() string { return "sensor" }

// Process parses every "label:value" item in the batch, appends the parsed
// values to the cumulative history, and summarizes this batch's count and
// average. Items whose value fails to parse are skipped, not failed; the
// batch itself fails only when it is not a sequence, or when it is non-empty
// and no item has the label:value shape.
func (w *SensorWorker) Process(data any) (string, error) {
	batch, ok := asBatch(data)
	if !ok {
		return "", nexus.Validationf("sensor %s: batch must be a sequence", w.id)
	}

	matched := false
	count := 0
	sum := 0.0
	for _, item := range batch {
		_, raw, ok := cutPair(item)
		if !ok {
			continue
		}
		matched = true
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			continue // silent skip, excluded from counts
		}
		count++
		sum += v
		w.history = append(w.history, v)
	}
	if len(batch) > 0 && !matched {
		return "", nexus.Validationf("sensor %s: no label:value readings in batch", w.id)
	}

	avg := 0.0
	if count > 0 {
		avg = sum / float64(count)
	}
	return fmt.Sprintf("%d readings processed, avg: %.2f", count, avg), nil
}

// Filter keeps readings whose item string starts with criteria.
func (w *SensorWorker) Filter(data any, criteria string) any {
	return filterItems(data, criteria, func(s string) bool {
		return strings.HasPrefix(s, criteria)
	})
}

// Stats reports the cumulative reading count and the cumulative average
// rounded to 2 decimals.
func (w *SensorWorker) Stats() map[string]any {
	avg := 0.0
	if len(w.history) > 0 {
		sum := 0.0
		for _, v := range w.history {
			sum += v
		}
		avg = math.Round(sum/float64(len(w.history))*100) / 100
	}
	return map[string]any{
		"id":       w.id,
		"kind":     w.Kind(),
		"readings": len(w.history),
		"average":  avg,
	}
}
