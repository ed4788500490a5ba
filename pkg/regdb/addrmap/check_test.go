package addrmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dallingham/regenerate-sub000/pkg/regdb"
	"github.com/dallingham/regenerate-sub000/pkg/regdb/param"
)

// spanProject builds one block at base 0 holding two register-set instances
// whose spans are controlled by the caller. Address bus width 8 gives each
// set a 0x100-byte address space.
func spanProject(offsetA, offsetB uint64) *regdb.Project {
	setA := regdb.NewRegisterSet("set_a")
	setA.AddRegister(regdb.NewRegister("A", "A", 0x0, 32))
	setB := regdb.NewRegisterSet("set_b")
	setB.AddRegister(regdb.NewRegister("B", "B", 0x0, 32))

	block := regdb.NewBlock("blk", 0x10000)
	instA := regdb.NewRegisterInst("inst_a", setA.UUID, offsetA)
	instA.RepeatOffset = 0x100
	instB := regdb.NewRegisterInst("inst_b", setB.UUID, offsetB)
	instB.RepeatOffset = 0x100
	block.AddRegsetInst(instA, setA)
	block.AddRegsetInst(instB, setB)

	project := regdb.NewProject("soc")
	project.AddBlockInst(regdb.NewBlockInst("top", block.UUID, 0), block)
	return project
}

func TestCheck_OverlappingSpansReported(t *testing.T) {
	// spans [0x0, 0x100) and [0x80, 0x180)
	project := spanProject(0x0, 0x80)

	problems, err := Check(project, param.NewResolver(nil))
	require.NoError(t, err)
	require.Len(t, problems, 1)

	problem := problems[0]
	assert.Equal(t, ProblemOverlap, problem.Kind)
	assert.Equal(t, "inst_a", problem.RegInst)
	assert.Equal(t, "inst_b", problem.OtherRegInst)
	assert.Equal(t, Span{Start: 0x0, End: 0x100}, problem.Span)
	assert.Equal(t, Span{Start: 0x80, End: 0x180}, problem.OtherSpan)
	assert.Contains(t, problem.String(), "inst_a")
}

func TestCheck_AdjacentSpansAreClean(t *testing.T) {
	// spans [0x0, 0x100) and [0x100, 0x200) touch but do not overlap
	project := spanProject(0x0, 0x100)

	problems, err := Check(project, param.NewResolver(nil))
	require.NoError(t, err)
	assert.Empty(t, problems)
}

func TestCheck_RepeatOffsetSmallerThanAddressSpace(t *testing.T) {
	regset := regdb.NewRegisterSet("regs")
	regset.Ports.AddressBusWidth = 8 // needs 0x100 per replica
	regset.AddRegister(regdb.NewRegister("R", "R", 0x0, 32))

	block := regdb.NewBlock("blk", 0x10000)
	inst := regdb.NewRegisterInst("regs", regset.UUID, 0)
	inst.Repeat = param.NewInt(2)
	inst.RepeatOffset = 0x80 // replicas would land inside each other's space
	block.AddRegsetInst(inst, regset)

	project := regdb.NewProject("soc")
	project.AddBlockInst(regdb.NewBlockInst("top", block.UUID, 0), block)

	problems, err := Check(project, param.NewResolver(nil))
	require.NoError(t, err)
	require.NotEmpty(t, problems)
	assert.Equal(t, ProblemRepeatOffset, problems[0].Kind)
	assert.Equal(t, "regs", problems[0].RegInst)
	assert.Equal(t, uint64(0x80), problems[0].RepeatOffset)
	assert.Equal(t, uint64(0x100), problems[0].AddressSpace)
	assert.Contains(t, problems[0].String(), "0x80")
	assert.Contains(t, problems[0].String(), "0x100")
}

func TestCheck_SingleInstanceIgnoresRepeatOffset(t *testing.T) {
	regset := regdb.NewRegisterSet("regs")
	regset.AddRegister(regdb.NewRegister("R", "R", 0x0, 32))

	block := regdb.NewBlock("blk", 0x10000)
	inst := regdb.NewRegisterInst("regs", regset.UUID, 0)
	inst.RepeatOffset = 0 // meaningless without replication
	block.AddRegsetInst(inst, regset)

	project := regdb.NewProject("soc")
	project.AddBlockInst(regdb.NewBlockInst("top", block.UUID, 0), block)

	problems, err := Check(project, param.NewResolver(nil))
	require.NoError(t, err)
	assert.Empty(t, problems)
}

func TestCheck_MisalignedRegisterReported(t *testing.T) {
	regset := regdb.NewRegisterSet("regs")
	regset.AddRegister(regdb.NewRegister("Odd", "ODD", 0x2, 32)) // 32-bit at a non-multiple of 4

	block := regdb.NewBlock("blk", 0x10000)
	block.AddRegsetInst(regdb.NewRegisterInst("regs", regset.UUID, 0), regset)

	project := regdb.NewProject("soc")
	project.AddBlockInst(regdb.NewBlockInst("top", block.UUID, 0), block)

	problems, err := Check(project, param.NewResolver(nil))
	require.NoError(t, err)
	require.Len(t, problems, 1)
	assert.Equal(t, ProblemAlignment, problems[0].Kind)
	assert.Equal(t, "odd", problems[0].Token)
	assert.Equal(t, uint64(0x2), problems[0].Address)
	assert.Contains(t, problems[0].String(), "next aligned address is 0x4")
}

func TestCheck_OverlapAcrossBlockReplicas(t *testing.T) {
	regset := regdb.NewRegisterSet("regs")
	regset.AddRegister(regdb.NewRegister("R", "R", 0x0, 32))

	// block replicas are spaced by 0x80 but each register set claims 0x100
	block := regdb.NewBlock("blk", 0x80)
	inst := regdb.NewRegisterInst("regs", regset.UUID, 0)
	inst.RepeatOffset = 0x100
	block.AddRegsetInst(inst, regset)

	project := regdb.NewProject("soc")
	blkInst := regdb.NewBlockInst("top", block.UUID, 0)
	blkInst.Repeat = 2
	project.AddBlockInst(blkInst, block)

	problems, err := Check(project, param.NewResolver(nil))
	require.NoError(t, err)
	require.NotEmpty(t, problems)
	assert.Equal(t, ProblemOverlap, problems[0].Kind)
	assert.Equal(t, "top_0", problems[0].BlockInst)
	assert.Equal(t, "top_1", problems[0].OtherBlockInst)
}

func TestCheck_UnresolvableRepeatIsError(t *testing.T) {
	project := spanProject(0x0, 0x100)
	block := project.Blocks[project.BlockInsts[0].BlockID]
	block.RegsetInsts[0].Repeat = param.NewParam(param.UUID("gone"), 0)

	_, err := Check(project, param.NewResolver(nil))
	require.Error(t, err)
	assert.ErrorIs(t, err, param.ErrUnresolvedParameter)
}
