package regdb

import (
	"github.com/dallingham/regenerate-sub000/pkg/regdb/param"
)

// Project is the root of the entity graph: the block instances making up the
// design, the blocks they refer to, the configured address maps, and the
// block-instance-scoped parameter overrides. A project is loaded and saved
// as a unit.
type Project struct {
	Name        string                `json:"name" yaml:"name"`
	BlockInsts  []*BlockInst          `json:"block_insts" yaml:"block_insts"`
	Blocks      map[param.UUID]*Block `json:"blocks" yaml:"blocks"`
	AddressMaps []*AddressMap         `json:"address_maps" yaml:"address_maps"`
	Overrides   []*param.Override     `json:"overrides" yaml:"overrides"`
}

// NewProject creates an empty project.
func NewProject(name string) *Project {
	return &Project{
		Name:   name,
		Blocks: make(map[param.UUID]*Block),
	}
}

// AddBlockInst attaches an instance of the given block to the project.
func (p *Project) AddBlockInst(inst *BlockInst, block *Block) {
	p.BlockInsts = append(p.BlockInsts, inst)
	if p.Blocks == nil {
		p.Blocks = make(map[param.UUID]*Block)
	}
	p.Blocks[block.UUID] = block
}

// BlockFor returns the block an instance refers to, or nil.
func (p *Project) BlockFor(inst *BlockInst) *Block {
	return p.Blocks[inst.BlockID]
}

// AddressMapByName returns the named address map, or nil.
func (p *Project) AddressMapByName(name string) *AddressMap {
	for _, m := range p.AddressMaps {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// RegisterParams walks every block and register set, registering all
// parameter definitions into the resolver's registry, then loads the
// persisted overrides into the resolver's tables. The resolver is cleared
// first, so repopulating after a reload never leaks stale entries.
func (p *Project) RegisterParams(res *param.Resolver) {
	res.Clear()
	finder := res.Finder()

	for _, block := range p.Blocks {
		block.RegisterParams(finder)
	}
	for _, block := range p.Blocks {
		for _, ov := range block.Overrides {
			if ov.Value == nil {
				continue
			}
			res.AddRegsetOverride(ov.Path, ov.Parameter, ov.Value)
		}
	}
	for _, ov := range p.Overrides {
		if ov.Value == nil {
			continue
		}
		res.AddBlockInstOverride(ov.Path, ov.Parameter, ov.Value)
	}
}
