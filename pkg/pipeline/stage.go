package pipeline

import "github.com/code-nexus/nexus/pkg/nexus"

// Stage is one precondition-checked transformation step. Every stage after
// the first requires the flag set by its predecessor and fails with a
// ValidationError when it is absent.
type Stage interface {
	Name() string
	Process(data any) (any, error)
}

// DefaultStages returns the standard input → transform → output sequence.
func DefaultStages() []Stage {
	return []Stage{InputStage{}, TransformStage{}, OutputStage{}}
}

// InputStage validates raw input and wraps it into a Record tagged
// "validated".
type InputStage struct{}

func (InputStage) Name() string { return "input" }

func (InputStage) Process(data any) (any, error) {
	if data == nil {
		return nil, nexus.Validationf("no input data provided")
	}
	return Record{"raw": data, "validated": true}, nil
}

// TransformStage requires a validated record and marks it transformed and
// enriched.
type TransformStage struct{}

func (TransformStage) Name() string { return "transform" }

func (TransformStage) Process(data any) (any, error) {
	rec, ok := data.(Record)
	if !ok || !rec.Flag("validated") {
		return nil, nexus.Validationf("invalid data format")
	}
	rec["transformed"] = true
	rec["enriched"] = true
	return rec, nil
}

// OutputStage requires a transformed record and marks it delivered.
type OutputStage struct{}

func (OutputStage) Name() string { return "output" }

func (OutputStage) Process(data any) (any, error) {
	rec, ok := data.(Record)
	if !ok || !rec.Flag("transformed") {
		return nil, nexus.Validationf("data not transformed")
	}
	rec["delivered"] = true
	return rec, nil
}
