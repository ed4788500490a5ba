package regdb

import (
	"github.com/dallingham/regenerate-sub000/pkg/regdb/param"
)

// BitField is a contiguous range of bits within a register. The most
// significant bit and the reset value may be parameterized.
type BitField struct {
	UUID  param.UUID   `json:"uuid" yaml:"uuid"`
	Name  string       `json:"name" yaml:"name"`
	LSB   int          `json:"lsb" yaml:"lsb"`
	MSB   *param.Value `json:"msb" yaml:"msb"`
	Reset *param.Value `json:"reset_value" yaml:"reset_value"`
}

// NewBitField creates a single-bit field at the given position.
func NewBitField(name string, lsb int) *BitField {
	return &BitField{
		UUID:  param.NewUUID(),
		Name:  name,
		LSB:   lsb,
		MSB:   param.NewInt(int64(lsb)),
		Reset: param.NewInt(0),
	}
}

// Width resolves the field width in bits.
func (f *BitField) Width(r *param.Resolver) (int, error) {
	msb, err := f.MSB.Resolve(r)
	if err != nil {
		return 0, err
	}
	return int(msb) - f.LSB + 1, nil
}
