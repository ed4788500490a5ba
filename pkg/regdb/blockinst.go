package regdb

import (
	"github.com/dallingham/regenerate-sub000/pkg/regdb/param"
)

// BlockInst is one instantiation of a block within the project. Repeated
// block instances are spaced by the block's AddressSize.
type BlockInst struct {
	UUID        param.UUID `json:"uuid" yaml:"uuid"`
	Name        string     `json:"name" yaml:"name"`
	BlockID     param.UUID `json:"block_id" yaml:"block_id"`
	AddressBase uint64     `json:"address_base" yaml:"address_base"`
	Repeat      int        `json:"repeat" yaml:"repeat"`
	HDL         string     `json:"hdl" yaml:"hdl"`
}

// NewBlockInst creates a single, non-repeated instance of a block.
func NewBlockInst(name string, blockID param.UUID, addressBase uint64) *BlockInst {
	return &BlockInst{
		UUID:        param.NewUUID(),
		Name:        name,
		BlockID:     blockID,
		AddressBase: addressBase,
		Repeat:      1,
	}
}
