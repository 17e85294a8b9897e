package stream

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/code-nexus/nexus/pkg/nexus"
)

// TransactionWorker tracks a running net flow over financial operations
// supplied as "action:amount" items, e.g. "buy:100" or "sell:150".
type TransactionWorker struct {
	id      string
	ops     int
	netFlow float64
}

// NewTransactionWorker creates a transaction worker with zero net flow.
func NewTransactionWorker(id string) *TransactionWorker {
	return &TransactionWorker{id: id}
}

func (w *TransactionWorker) ID() string   { return w.id }
func (w *TransactionWorker) Kind() string { return "transaction" }

// Process parses every "action:amount" item. "buy" adds the amount to the
// cumulative net flow, "sell" subtracts it; actions are matched
// case-insensitively after trimming. Unparseable amounts are skipped. The
// summary pairs this batch's operation count with the cumulative net flow,
// formatted as a signed integer with an explicit "+" when non-negative.
func (w *TransactionWorker) Process(data any) (string, error) {
	batch, ok := asBatch(data)
	if !ok {
		return "", nexus.Validationf("transaction %s: batch must be a sequence", w.id)
	}

	matched := false
	ops := 0
	for _, item := range batch {
		action, raw, ok := cutPair(item)
		if !ok {
			continue
		}
		matched = true
		amount, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			continue
		}
		ops++
		switch strings.ToLower(strings.TrimSpace(action)) {
		case "buy":
			w.netFlow += amount
		case "sell":
			w.netFlow -= amount
		}
	}
	if len(batch) > 0 && !matched {
		return "", nexus.Validationf("transaction %s: no action:amount operations in batch", w.id)
	}

	w.ops += ops
	return fmt.Sprintf("%d operations, net flow: %+d units", ops, int(math.Round(w.netFlow))), nil
}

// Filter keeps operations whose item string starts with criteria.
func (w *TransactionWorker) Filter(data any, criteria string) any {
	return filterItems(data, criteria, func(s string) bool {
		return strings.HasPrefix(s, criteria)
	})
}

// Stats reports the cumulative operation count and net flow.
func (w *TransactionWorker) Stats() map[string]any {
	return map[string]any{
		"id":         w.id,
		"kind":       w.Kind(),
		"operations": w.ops,
		"net_flow":   int(math.Round(w.netFlow)),
	}
}
