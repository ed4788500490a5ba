package param

import (
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/dallingham/regenerate-sub000/pkg/utils"
)

// Value is a numeric quantity that is either a literal integer or a
// reference to a parameter Definition plus a signed offset. It is used
// wherever a register dimension, repeat count, reset value or bit position
// may be fixed at design time or driven by a named, overridable parameter.
type Value struct {
	IsParameter bool
	Int         int64
	ParamRef    UUID
	Offset      int64
}

// NewInt creates a literal value.
func NewInt(value int64) *Value {
	return &Value{Int: value}
}

// NewParam creates a parameter-reference value.
func NewParam(id UUID, offset int64) *Value {
	return &Value{
		IsParameter: true,
		ParamRef:    id,
		Offset:      offset,
	}
}

// SetInt switches the value to literal mode.
func (v *Value) SetInt(value int64) {
	v.IsParameter = false
	v.Int = value
	v.ParamRef = ""
	v.Offset = 0
}

// SetParam switches the value to parameter-reference mode.
func (v *Value) SetParam(id UUID, offset int64) {
	v.IsParameter = true
	v.ParamRef = id
	v.Offset = offset
	v.Int = 0
}

// Resolve turns the value into a concrete integer. A literal resolves to
// itself regardless of resolver state. A parameter reference is looked up in
// the resolver's registry and resolved with override precedence, then the
// offset is added. A reference to an unregistered parameter is a typed
// error, never a silent zero.
func (v *Value) Resolve(r *Resolver) (int64, error) {
	if !v.IsParameter {
		return v.Int, nil
	}

	def := r.Finder().Find(v.ParamRef)
	if def == nil {
		return 0, utils.MakeError(ErrUnresolvedParameter, "%q", v.ParamRef)
	}

	resolved, err := r.Resolve(def)
	if err != nil {
		return 0, err
	}
	return resolved + v.Offset, nil
}

// ResolveOrDefault resolves the value, falling back to 0 when the reference
// cannot be resolved. Intended for interactive/preview consumers only; batch
// generation paths should call Resolve and handle the error.
func (v *Value) ResolveOrDefault(r *Resolver) int64 {
	resolved, err := v.Resolve(r)
	if err != nil {
		return 0
	}
	return resolved
}

// name renders the referenced parameter's display name with a +N/-N suffix
// for a nonzero offset. Returns "" when the reference is unregistered.
func (v *Value) name(finder *Registry) string {
	def := finder.Find(v.ParamRef)
	if def == nil {
		return ""
	}
	if v.Offset > 0 {
		return fmt.Sprintf("%s+%d", def.Name, v.Offset)
	}
	if v.Offset < 0 {
		return fmt.Sprintf("%s%d", def.Name, v.Offset)
	}
	return def.Name
}

// IntString renders the literal in decimal, or the parameter name.
func (v *Value) IntString(finder *Registry) string {
	if v.IsParameter {
		return v.name(finder)
	}
	return fmt.Sprintf("%d", v.Int)
}

// HexString renders the literal in C hex notation, or the parameter name.
func (v *Value) HexString(finder *Registry) string {
	if v.IsParameter {
		return v.name(finder)
	}
	return fmt.Sprintf("0x%x", v.Int)
}

// VerilogString renders the literal in Verilog hex notation, or the
// parameter name. Generators depend on this exact formatting.
func (v *Value) VerilogString(finder *Registry) string {
	if v.IsParameter {
		return v.name(finder)
	}
	return fmt.Sprintf("'h%x", v.Int)
}

// valueRecord is the persisted form of a Value. The literal is encoded as a
// string and parsed base-auto, so hand-written files may use hex.
type valueRecord struct {
	IsParameter bool   `json:"is_parameter" yaml:"is_parameter"`
	Offset      int64  `json:"offset" yaml:"offset"`
	Value       string `json:"value" yaml:"value"`
}

func (v *Value) record() valueRecord {
	rec := valueRecord{
		IsParameter: v.IsParameter,
		Offset:      v.Offset,
	}
	if v.IsParameter {
		rec.Value = string(v.ParamRef)
	} else {
		rec.Value = strconv.FormatInt(v.Int, 10)
	}
	return rec
}

func (v *Value) fromRecord(rec valueRecord) error {
	if rec.IsParameter {
		v.SetParam(UUID(rec.Value), rec.Offset)
		return nil
	}
	parsed, err := strconv.ParseInt(rec.Value, 0, 64)
	if err != nil {
		return utils.MakeError(ErrBadValue, "%q", rec.Value)
	}
	v.SetInt(parsed)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (v *Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.record())
}

// UnmarshalJSON implements json.Unmarshaler. A bare integer is accepted as a
// shorthand for a literal value; older project files use that form for
// override values.
func (v *Value) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] != '{' {
		var literal int64
		if err := json.Unmarshal(data, &literal); err != nil {
			return err
		}
		v.SetInt(literal)
		return nil
	}

	var rec valueRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	return v.fromRecord(rec)
}

// MarshalYAML implements yaml.Marshaler.
func (v Value) MarshalYAML() (interface{}, error) {
	return v.record(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler, with the same bare-integer
// shorthand as the JSON form.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var literal int64
		if err := node.Decode(&literal); err != nil {
			return err
		}
		v.SetInt(literal)
		return nil
	}

	var rec valueRecord
	if err := node.Decode(&rec); err != nil {
		return err
	}
	return v.fromRecord(rec)
}
