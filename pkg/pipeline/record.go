package pipeline

// Record is the intermediate representation threaded between stages. Stages
// mark their progress with boolean flags; the original input rides along
// under the "raw" key.
type Record map[string]any

// Flag reports whether the named flag is present and true.
func (r Record) Flag(name string) bool {
	b, _ := r[name].(bool)
	return b
}
