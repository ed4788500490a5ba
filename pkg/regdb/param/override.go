package param

// Override is a persisted, instance-specific replacement for a parameter's
// default value. Path identifies the register-set instance or block instance
// the override applies to, Parameter identifies which definition is being
// overridden there. The replacement is itself a Value, so an override can be
// a plain integer or defer to another parameter.
type Override struct {
	Path      UUID   `json:"path" yaml:"path"`
	Parameter UUID   `json:"parameter" yaml:"parameter"`
	Value     *Value `json:"value" yaml:"value"`
}

// NewOverride creates an override record.
func NewOverride(path UUID, parameter UUID, value *Value) *Override {
	return &Override{
		Path:      path,
		Parameter: parameter,
		Value:     value,
	}
}
