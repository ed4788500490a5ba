package regdb

import (
	"cmp"
	"slices"

	"github.com/dallingham/regenerate-sub000/pkg/regdb/param"
)

// Ports describes the bus interface of a register set. AddressBusWidth
// determines the set's address space: one instance occupies
// 1 << AddressBusWidth bytes.
type Ports struct {
	AddressBusWidth uint `json:"address_bus_width" yaml:"address_bus_width"`
	DataBusWidth    uint `json:"data_bus_width" yaml:"data_bus_width"`
}

// RegisterSet is a reusable collection of registers. The same set can be
// instantiated multiple times within one or more blocks; the owning Project
// governs its lifetime.
type RegisterSet struct {
	UUID       param.UUID          `json:"uuid" yaml:"uuid"`
	Name       string              `json:"name" yaml:"name"`
	Ports      Ports               `json:"ports" yaml:"ports"`
	Registers  []*Register         `json:"registers" yaml:"registers"`
	Parameters []*param.Definition `json:"parameters" yaml:"parameters"`
}

// NewRegisterSet creates an empty register set.
func NewRegisterSet(name string) *RegisterSet {
	return &RegisterSet{
		UUID: param.NewUUID(),
		Name: name,
		Ports: Ports{
			AddressBusWidth: 8,
			DataBusWidth:    32,
		},
	}
}

// AllRegisters returns the registers sorted by ascending address.
func (s *RegisterSet) AllRegisters() []*Register {
	regs := slices.Clone(s.Registers)
	slices.SortStableFunc(regs, func(a, b *Register) int {
		return cmp.Compare(a.Address, b.Address)
	})
	return regs
}

// AddRegister appends a register to the set.
func (s *RegisterSet) AddRegister(reg *Register) {
	s.Registers = append(s.Registers, reg)
}

// AddParameter adds a definition to the set and registers it, making it
// resolvable by identity.
func (s *RegisterSet) AddParameter(finder *param.Registry, def *param.Definition) {
	s.Parameters = append(s.Parameters, def)
	finder.Register(def)
}

// RemoveParameter removes a definition from the set and unregisters it.
func (s *RegisterSet) RemoveParameter(finder *param.Registry, def *param.Definition) {
	s.Parameters = slices.DeleteFunc(s.Parameters, func(d *param.Definition) bool {
		return d.UUID == def.UUID
	})
	finder.Unregister(def)
}

// RegisterParams registers every parameter the set owns, unregistering any
// stale entry for the same identity first so that reloading the same file
// does not leak duplicate entries.
func (s *RegisterSet) RegisterParams(finder *param.Registry) {
	for _, def := range s.Parameters {
		finder.Unregister(def)
		finder.Register(def)
	}
}
