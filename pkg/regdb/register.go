package regdb

import (
	"strings"

	"github.com/dallingham/regenerate-sub000/pkg/regdb/param"
)

// Register is one addressable register within a register set. Address is the
// byte offset within the set's address space; Width is in bits. Dimension is
// the array dimension and may be parameterized. Token is the identifier
// emitted into generated headers and is always stored upper-cased.
type Register struct {
	UUID      param.UUID   `json:"uuid" yaml:"uuid"`
	Name      string       `json:"name" yaml:"name"`
	Token     string       `json:"token" yaml:"token"`
	Address   uint64       `json:"address" yaml:"address"`
	Width     int          `json:"width" yaml:"width"`
	Dimension *param.Value `json:"dimension" yaml:"dimension"`
	Fields    []*BitField  `json:"fields" yaml:"fields"`
}

// NewRegister creates a register with a normalized token.
func NewRegister(name string, token string, address uint64, width int) *Register {
	reg := &Register{
		UUID:      param.NewUUID(),
		Name:      name,
		Address:   address,
		Width:     width,
		Dimension: param.NewInt(1),
	}
	reg.SetToken(token)
	return reg
}

// SetToken stores the token trimmed and upper-cased.
func (r *Register) SetToken(token string) {
	r.Token = strings.ToUpper(strings.TrimSpace(token))
}

// NormalizeToken re-applies token normalization after decoding.
func (r *Register) NormalizeToken() {
	r.SetToken(r.Token)
}

// AddBitField appends a field to the register.
func (r *Register) AddBitField(field *BitField) {
	r.Fields = append(r.Fields, field)
}
