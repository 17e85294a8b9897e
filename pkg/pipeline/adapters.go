package pipeline

import (
	"fmt"
	"strings"

	"github.com/code-nexus/nexus/pkg/nexus"
)

// JSONAdapter processes a decoded mapping describing a temperature reading.
type JSONAdapter struct {
	*Pipeline
}

// NewJSONAdapter creates a JSON adapter with no stages attached.
func NewJSONAdapter(id string) *JSONAdapter {
	return &JSONAdapter{New(id)}
}

func (a *JSONAdapter) Kind() string { return "json" }

// Process classifies the reading's value: below 50 is the normal range,
// anything else is a warning.
func (a *JSONAdapter) Process(data any) (string, error) {
	doc, ok := data.(map[string]any)
	if !ok {
		return "", nexus.Validationf("json adapter %s: input must be a mapping", a.ID())
	}
	if _, err := a.RunStages(data); err != nil {
		return "", err
	}

	value, _ := toFloat(doc["value"])
	unit, _ := doc["unit"].(string)
	status := "Normal range"
	if value >= 50 {
		status = "Warning"
	}
	return fmt.Sprintf("Processed temperature reading: %g°%s (%s)", value, unit, status), nil
}

// CSVAdapter processes delimited text, one action per line.
type CSVAdapter struct {
	*Pipeline
}

// NewCSVAdapter creates a CSV adapter with no stages attached.
func NewCSVAdapter(id string) *CSVAdapter {
	return &CSVAdapter{New(id)}
}

func (a *CSVAdapter) Kind() string { return "csv" }

// Process counts the non-blank rows of the input text.
func (a *CSVAdapter) Process(data any) (string, error) {
	text, ok := data.(string)
	if !ok {
		return "", nexus.Validationf("csv adapter %s: input must be a string", a.ID())
	}
	if _, err := a.RunStages(data); err != nil {
		return "", err
	}

	rows := 0
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		if strings.TrimSpace(line) != "" {
			rows++
		}
	}
	return fmt.Sprintf("User activity logged: %d actions processed", rows), nil
}

// StreamAdapter processes a numeric reading sequence.
type StreamAdapter struct {
	*Pipeline
}

// NewStreamAdapter creates a stream adapter with no stages attached.
func NewStreamAdapter(id string) *StreamAdapter {
	return &StreamAdapter{New(id)}
}

func (a *StreamAdapter) Kind() string { return "stream" }

// Process averages the readings; an empty sequence averages to 0.0.
func (a *StreamAdapter) Process(data any) (string, error) {
	series, ok := asSeries(data)
	if !ok {
		return "", nexus.Validationf("stream adapter %s: input must be a numeric sequence", a.ID())
	}
	if _, err := a.RunStages(data); err != nil {
		return "", err
	}

	avg := 0.0
	if len(series) > 0 {
		sum := 0.0
		for _, v := range series {
			sum += v
		}
		avg = sum / float64(len(series))
	}
	return fmt.Sprintf("Stream summary: %d readings, avg: %.1f°C", len(series), avg), nil
}

// toFloat widens the numeric types JSON and YAML decoders produce.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// asSeries coerces data into a float slice. Every element must be numeric.
func asSeries(data any) ([]float64, bool) {
	switch v := data.(type) {
	case []float64:
		return v, true
	case []int:
		out := make([]float64, len(v))
		for i, n := range v {
			out[i] = float64(n)
		}
		return out, true
	case []any:
		out := make([]float64, 0, len(v))
		for _, item := range v {
			f, ok := toFloat(item)
			if !ok {
				return nil, false
			}
			out = append(out, f)
		}
		return out, true
	default:
		return nil, false
	}
}
