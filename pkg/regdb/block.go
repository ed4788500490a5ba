package regdb

import (
	"slices"

	"github.com/dallingham/regenerate-sub000/pkg/regdb/param"
)

// Block is a reusable collection of register-set instances with its own
// address space. AddressSize is the span one block instance occupies;
// repeated block instances are spaced by it. Regsets maps register-set
// identity to the shared RegisterSet object, since the same set can be
// instantiated at several offsets. Overrides carries the register-set-scoped
// parameter overrides persisted with the block.
type Block struct {
	UUID        param.UUID                  `json:"uuid" yaml:"uuid"`
	Name        string                      `json:"name" yaml:"name"`
	AddressSize uint64                      `json:"address_size" yaml:"address_size"`
	RegsetInsts []*RegisterInst             `json:"regset_insts" yaml:"regset_insts"`
	Regsets     map[param.UUID]*RegisterSet `json:"regsets" yaml:"regsets"`
	Parameters  []*param.Definition         `json:"parameters" yaml:"parameters"`
	Overrides   []*param.Override           `json:"overrides" yaml:"overrides"`
}

// NewBlock creates an empty block.
func NewBlock(name string, addressSize uint64) *Block {
	return &Block{
		UUID:        param.NewUUID(),
		Name:        name,
		AddressSize: addressSize,
		Regsets:     make(map[param.UUID]*RegisterSet),
	}
}

// AddRegsetInst attaches an instance of the given register set to the block.
func (b *Block) AddRegsetInst(inst *RegisterInst, regset *RegisterSet) {
	b.RegsetInsts = append(b.RegsetInsts, inst)
	if b.Regsets == nil {
		b.Regsets = make(map[param.UUID]*RegisterSet)
	}
	b.Regsets[regset.UUID] = regset
}

// RegsetFor returns the register set an instance refers to, or nil.
func (b *Block) RegsetFor(inst *RegisterInst) *RegisterSet {
	return b.Regsets[inst.RegsetID]
}

// AddParameter adds a definition to the block and registers it.
func (b *Block) AddParameter(finder *param.Registry, def *param.Definition) {
	b.Parameters = append(b.Parameters, def)
	finder.Register(def)
}

// RemoveParameter removes a definition from the block and unregisters it.
func (b *Block) RemoveParameter(finder *param.Registry, def *param.Definition) {
	b.Parameters = slices.DeleteFunc(b.Parameters, func(d *param.Definition) bool {
		return d.UUID == def.UUID
	})
	finder.Unregister(def)
}

// RegisterParams registers the block's own parameters and those of every
// register set it maps, with the unregister-then-register reload discipline.
func (b *Block) RegisterParams(finder *param.Registry) {
	for _, def := range b.Parameters {
		finder.Unregister(def)
		finder.Register(def)
	}
	for _, regset := range b.Regsets {
		regset.RegisterParams(finder)
	}
}
