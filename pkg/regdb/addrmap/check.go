package addrmap

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/dallingham/regenerate-sub000/pkg/regdb"
	"github.com/dallingham/regenerate-sub000/pkg/regdb/param"
	"github.com/dallingham/regenerate-sub000/pkg/utils"
)

// ProblemKind classifies an address-space violation.
type ProblemKind int

const (
	// ProblemOverlap: two register-set instances' address spans intersect.
	ProblemOverlap ProblemKind = iota
	// ProblemRepeatOffset: an instance's replica spacing is smaller than the
	// address space its register set declares.
	ProblemRepeatOffset
	// ProblemAlignment: a multi-byte register's absolute address is not
	// aligned to its width in bytes.
	ProblemAlignment
)

// Span is a half-open address range [Start, End).
type Span struct {
	Start uint64
	End   uint64
}

func (s Span) String() string {
	return fmt.Sprintf("[0x%x, 0x%x)", s.Start, s.End)
}

// Problem is one detected address-space violation, with enough identifying
// information for a user-facing report.
type Problem struct {
	Kind      ProblemKind
	BlockInst string
	RegInst   string
	Span      Span

	// Overlap only: the other instance in the conflict.
	OtherBlockInst string
	OtherRegInst   string
	OtherSpan      Span

	// Repeat-offset only.
	RepeatOffset uint64
	AddressSpace uint64

	// Alignment only.
	Token   string
	Address uint64
	Width   int
}

func (p Problem) String() string {
	switch p.Kind {
	case ProblemOverlap:
		return fmt.Sprintf("address overlap: %s/%s %s conflicts with %s/%s %s",
			p.BlockInst, p.RegInst, p.Span,
			p.OtherBlockInst, p.OtherRegInst, p.OtherSpan)
	case ProblemRepeatOffset:
		return fmt.Sprintf("repeat offset of %s/%s is 0x%x, smaller than the register set's address space (0x%x)",
			p.BlockInst, p.RegInst, p.RepeatOffset, p.AddressSpace)
	case ProblemAlignment:
		return fmt.Sprintf("register %s/%s/%s at 0x%x is not aligned to its width (%d bits); next aligned address is 0x%x",
			p.BlockInst, p.RegInst, p.Token, p.Address, p.Width,
			utils.AlignUp(p.Address, uint64(p.Width/8)))
	}
	return "unknown problem"
}

type instSpan struct {
	blockInst string
	regInst   string
	span      Span
}

// Check validates the project's address space. It returns every violation
// found; an empty slice means address-map generation is safe. The error
// return covers structural failures only (unknown blocks, unresolvable
// repeat counts), not address violations.
//
// Run this before trusting Build's output for RTL generation: composition
// itself never refuses to run.
func Check(prj *regdb.Project, res *param.Resolver) ([]Problem, error) {
	defer func() {
		res.SetRegInst("")
		res.SetBlockInst("")
	}()

	var problems []Problem
	var spans []instSpan

	for _, blkInst := range prj.BlockInsts {
		block := prj.BlockFor(blkInst)
		if block == nil {
			return nil, utils.MakeError(ErrUnknownBlock, "%q", blkInst.Name)
		}

		replicas := blkInst.Repeat
		if replicas < 1 {
			replicas = 1
		}
		for i := 0; i < replicas; i++ {
			blockAddr := blkInst.AddressBase + uint64(i)*block.AddressSize
			blockName := blkInst.Name
			if blkInst.Repeat > 1 {
				blockName = fmt.Sprintf("%s_%d", blkInst.Name, i)
			}

			res.SetBlockInst(blkInst.UUID)
			for _, regInst := range block.RegsetInsts {
				regset := block.RegsetFor(regInst)
				if regset == nil {
					return nil, utils.MakeError(ErrUnknownRegset, "%s/%s", blockName, regInst.Name)
				}

				res.SetRegInst(regInst.UUID)
				repeat, err := regInst.Repeat.Resolve(res)
				if err != nil {
					return nil, fmt.Errorf("resolving repeat count of %s/%s: %w", blockName, regInst.Name, err)
				}
				if repeat < 1 {
					return nil, utils.MakeError(ErrBadRepeat, "%s/%s resolved to %d", blockName, regInst.Name, repeat)
				}

				space := uint64(1) << regset.Ports.AddressBusWidth
				if repeat > 1 && regInst.RepeatOffset < space {
					problems = append(problems, Problem{
						Kind:         ProblemRepeatOffset,
						BlockInst:    blockName,
						RegInst:      regInst.Name,
						RepeatOffset: regInst.RepeatOffset,
						AddressSpace: space,
					})
				}

				size := uint64(repeat) * regInst.RepeatOffset
				if size < space {
					size = space
				}
				start := blockAddr + regInst.Offset
				spans = append(spans, instSpan{
					blockInst: blockName,
					regInst:   regInst.Name,
					span:      Span{Start: start, End: start + size},
				})
			}
		}
	}

	slices.SortStableFunc(spans, func(a, b instSpan) int {
		return cmp.Compare(a.span.Start, b.span.Start)
	})
	for i := 1; i < len(spans); i++ {
		prev, cur := spans[i-1], spans[i]
		if prev.span.End > cur.span.Start {
			problems = append(problems, Problem{
				Kind:           ProblemOverlap,
				BlockInst:      prev.blockInst,
				RegInst:        prev.regInst,
				Span:           prev.span,
				OtherBlockInst: cur.blockInst,
				OtherRegInst:   cur.regInst,
				OtherSpan:      cur.span,
			})
		}
	}

	aligned, err := checkAlignment(prj, res)
	if err != nil {
		return nil, err
	}
	problems = append(problems, aligned...)

	return problems, nil
}

// checkAlignment flags every multi-byte register whose flattened absolute
// address is not a multiple of its width in bytes.
func checkAlignment(prj *regdb.Project, res *param.Resolver) ([]Problem, error) {
	paths, err := Build(prj, res)
	if err != nil {
		return nil, err
	}

	var problems []Problem
	for _, path := range paths {
		bytes := uint64(path.Width / 8)
		if bytes <= 1 {
			continue
		}
		if !utils.IsAligned(path.Address, bytes) {
			problems = append(problems, Problem{
				Kind:      ProblemAlignment,
				BlockInst: path.BlockInst,
				RegInst:   path.RegInst,
				Token:     path.Token,
				Address:   path.Address,
				Width:     path.Width,
			})
		}
	}
	return problems, nil
}
