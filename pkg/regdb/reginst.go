package regdb

import (
	"github.com/dallingham/regenerate-sub000/pkg/regdb/param"
)

// RegisterInst is one instantiation of a register set within a block.
// Offset is the byte offset within the block's address space. Repeat may be
// parameterized; RepeatOffset is the address spacing between replicas and
// must be at least as large as the set's own address space.
type RegisterInst struct {
	UUID         param.UUID   `json:"uuid" yaml:"uuid"`
	Name         string       `json:"name" yaml:"name"`
	RegsetID     param.UUID   `json:"regset_id" yaml:"regset_id"`
	Offset       uint64       `json:"offset" yaml:"offset"`
	Repeat       *param.Value `json:"repeat" yaml:"repeat"`
	RepeatOffset uint64       `json:"repeat_offset" yaml:"repeat_offset"`
	HDL          string       `json:"hdl" yaml:"hdl"`
}

// NewRegisterInst creates a single, non-repeated instance of a register set.
func NewRegisterInst(name string, regsetID param.UUID, offset uint64) *RegisterInst {
	return &RegisterInst{
		UUID:         param.NewUUID(),
		Name:         name,
		RegsetID:     regsetID,
		Offset:       offset,
		Repeat:       param.NewInt(1),
		RepeatOffset: 0x10000,
	}
}
