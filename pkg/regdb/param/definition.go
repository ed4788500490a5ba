package param

// Definition is a named design-time parameter with a default value and a
// closed [Min, Max] range. A Definition becomes resolvable once its owning
// container (register set or block) registers it into a Registry.
type Definition struct {
	UUID    UUID   `json:"uuid" yaml:"uuid"`
	Name    string `json:"name" yaml:"name"`
	Default int64  `json:"value" yaml:"value"`
	Min     int64  `json:"min_val" yaml:"min_val"`
	Max     int64  `json:"max_val" yaml:"max_val"`
}

// NewDefinition creates a parameter definition with a generated identity.
// Registration into a Registry is the owning container's job, not the
// constructor's.
func NewDefinition(name string, value int64, minVal int64, maxVal int64) *Definition {
	return &Definition{
		UUID:    NewUUID(),
		Name:    name,
		Default: value,
		Min:     minVal,
		Max:     maxVal,
	}
}

// RangeOK reports whether the default value lies within the declared range.
// An out-of-range default is a soft warning at load time, not a hard error.
func (d *Definition) RangeOK() bool {
	return d.Min <= d.Default && d.Default <= d.Max
}
