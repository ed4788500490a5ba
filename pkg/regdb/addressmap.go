package regdb

import (
	"github.com/dallingham/regenerate-sub000/pkg/regdb/param"
)

// AddressMap names a view of the project address space: a base address, an
// address width, and the block instances that appear in the map. Fixed maps
// keep their base address; relocatable maps may be rebased by the consumer.
type AddressMap struct {
	UUID   param.UUID   `json:"uuid" yaml:"uuid"`
	Name   string       `json:"name" yaml:"name"`
	Base   uint64       `json:"base" yaml:"base"`
	Width  int          `json:"width" yaml:"width"`
	Fixed  bool         `json:"fixed" yaml:"fixed"`
	Blocks []param.UUID `json:"block_insts" yaml:"block_insts"`
}

// NewAddressMap creates an address map with no member block instances.
func NewAddressMap(name string, base uint64) *AddressMap {
	return &AddressMap{
		UUID: param.NewUUID(),
		Name: name,
		Base: base,
	}
}

// Contains reports whether the block instance belongs to the map. A map
// with no explicit membership contains every block instance.
func (m *AddressMap) Contains(blkInstID param.UUID) bool {
	if len(m.Blocks) == 0 {
		return true
	}
	for _, id := range m.Blocks {
		if id == blkInstID {
			return true
		}
	}
	return false
}
