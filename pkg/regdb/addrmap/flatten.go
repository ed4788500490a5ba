// Package addrmap flattens a project's block and register-set instance
// hierarchy into absolute register addresses, and validates the address
// space for overlap and alignment before the flattened map is trusted for
// generation.
package addrmap

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dallingham/regenerate-sub000/pkg/regdb"
	"github.com/dallingham/regenerate-sub000/pkg/regdb/param"
	"github.com/dallingham/regenerate-sub000/pkg/utils"
)

var (
	// ErrUnknownBlock reports a block instance whose block identity is not in
	// the project's block map.
	ErrUnknownBlock = errors.New("block instance refers to an unknown block")

	// ErrUnknownRegset reports a register-set instance whose set identity is
	// not mapped by its owning block.
	ErrUnknownRegset = errors.New("register instance refers to an unknown register set")

	// ErrBadRepeat reports a resolved repeat count below 1.
	ErrBadRepeat = errors.New("repeat count must be at least 1")
)

// SignalPath is one row of the flattened address map: a register instance at
// its absolute address. Token is the register's token, lower-cased. Width is
// in bits.
type SignalPath struct {
	BlockInst string
	RegInst   string
	Token     string
	Address   uint64
	Width     int
}

// Build produces the flat address list for the whole project. Entries come
// out in block-instance order, then register-set-instance order, then
// ascending register address within each set; consumers needing any other
// order must sort explicitly.
//
// Every parameter-valued repeat count is resolved through the resolver with
// the instance context set to the (register-set instance, block instance)
// pair being walked, so per-instance overrides take effect.
func Build(prj *regdb.Project, res *param.Resolver) ([]SignalPath, error) {
	return build(prj, res, 0, nil)
}

// BuildForMap produces the flat address list for one configured address map:
// only the map's member block instances are walked, and the map's base
// address is added to every entry.
func BuildForMap(prj *regdb.Project, res *param.Resolver, m *regdb.AddressMap) ([]SignalPath, error) {
	return build(prj, res, m.Base, m)
}

func build(prj *regdb.Project, res *param.Resolver, base uint64, m *regdb.AddressMap) ([]SignalPath, error) {
	defer func() {
		res.SetRegInst("")
		res.SetBlockInst("")
	}()

	var paths []SignalPath
	for _, blkInst := range prj.BlockInsts {
		if m != nil && !m.Contains(blkInst.UUID) {
			continue
		}
		block := prj.BlockFor(blkInst)
		if block == nil {
			return nil, utils.MakeError(ErrUnknownBlock, "%q", blkInst.Name)
		}

		var err error
		if blkInst.Repeat > 1 {
			for i := 0; i < blkInst.Repeat; i++ {
				addr := base + blkInst.AddressBase + uint64(i)*block.AddressSize
				name := fmt.Sprintf("%s_%d", blkInst.Name, i)
				paths, err = appendBlockInst(paths, res, name, blkInst, block, addr)
				if err != nil {
					return nil, err
				}
			}
		} else {
			paths, err = appendBlockInst(paths, res, blkInst.Name, blkInst, block, base+blkInst.AddressBase)
			if err != nil {
				return nil, err
			}
		}
	}
	return paths, nil
}

// appendBlockInst emits every register of every register-set instance in one
// (possibly replicated) block instance, starting at blockAddr.
func appendBlockInst(
	paths []SignalPath,
	res *param.Resolver,
	name string,
	blkInst *regdb.BlockInst,
	block *regdb.Block,
	blockAddr uint64,
) ([]SignalPath, error) {
	res.SetBlockInst(blkInst.UUID)

	for _, regInst := range block.RegsetInsts {
		regset := block.RegsetFor(regInst)
		if regset == nil {
			return nil, utils.MakeError(ErrUnknownRegset, "%s/%s", name, regInst.Name)
		}

		res.SetRegInst(regInst.UUID)
		repeat, err := regInst.Repeat.Resolve(res)
		if err != nil {
			return nil, fmt.Errorf("resolving repeat count of %s/%s: %w", name, regInst.Name, err)
		}
		if repeat < 1 {
			return nil, utils.MakeError(ErrBadRepeat, "%s/%s resolved to %d", name, regInst.Name, repeat)
		}

		stride := uint64(1) << regset.Ports.AddressBusWidth
		if repeat > 1 {
			for i := int64(0); i < repeat; i++ {
				for _, reg := range regset.AllRegisters() {
					regBase := reg.Address + regInst.Offset + blockAddr
					paths = append(paths, SignalPath{
						BlockInst: name,
						RegInst:   fmt.Sprintf("%s_%d", regInst.Name, i),
						Token:     strings.ToLower(reg.Token),
						Address:   regBase + uint64(i)*stride,
						Width:     reg.Width,
					})
				}
			}
		} else {
			for _, reg := range regset.AllRegisters() {
				paths = append(paths, SignalPath{
					BlockInst: name,
					RegInst:   regInst.Name,
					Token:     strings.ToLower(reg.Token),
					Address:   reg.Address + regInst.Offset + blockAddr,
					Width:     reg.Width,
				})
			}
		}
	}
	return paths, nil
}
