package projfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dallingham/regenerate-sub000/pkg/regdb"
	"github.com/dallingham/regenerate-sub000/pkg/regdb/addrmap"
	"github.com/dallingham/regenerate-sub000/pkg/regdb/param"
)

// fixtureProject builds a small project with a parameterized repeat count
// and one override at each scope.
func fixtureProject() (*regdb.Project, *param.Definition) {
	depth := param.NewDefinition("NUM_CHANNELS", 2, 1, 16)

	regset := regdb.NewRegisterSet("chan_regs")
	regset.Ports.AddressBusWidth = 6
	regset.Parameters = append(regset.Parameters, depth)
	regset.AddRegister(regdb.NewRegister("Configuration", "cfg", 0x0, 32))

	block := regdb.NewBlock("chan_block", 0x10000)
	regInst := regdb.NewRegisterInst("chan", regset.UUID, 0x100)
	regInst.Repeat = param.NewParam(depth.UUID, 0)
	regInst.RepeatOffset = 0x40
	block.AddRegsetInst(regInst, regset)
	block.Overrides = append(block.Overrides,
		param.NewOverride(regInst.UUID, depth.UUID, param.NewInt(4)))

	project := regdb.NewProject("soc")
	blkInst := regdb.NewBlockInst("chip0", block.UUID, 0x2000)
	project.AddBlockInst(blkInst, block)
	project.Overrides = append(project.Overrides,
		param.NewOverride(blkInst.UUID, depth.UUID, param.NewInt(8)))

	return project, depth
}

func writeProject(t *testing.T, name string, project *regdb.Project) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, Save(path, project))
	return path
}

func TestLoad_JSONRoundTrip(t *testing.T) {
	project, depth := fixtureProject()
	path := writeProject(t, "soc.json", project)

	loaded, res, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "soc", loaded.Name)

	// the parameter is registered and resolvable
	def := res.Finder().Find(depth.UUID)
	require.NotNil(t, def)
	assert.Equal(t, "NUM_CHANNELS", def.Name)

	// the regset-scoped override wins during flattening: 4 replicas
	paths, err := addrmap.Build(loaded, res)
	require.NoError(t, err)
	assert.Len(t, paths, 4)
	assert.Equal(t, "chan_3", paths[3].RegInst)
}

func TestLoad_YAMLProject(t *testing.T) {
	project, depth := fixtureProject()
	path := writeProject(t, "soc.yaml", project)

	loaded, res, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, res.Finder().Find(depth.UUID))

	paths, err := addrmap.Build(loaded, res)
	require.NoError(t, err)
	assert.Len(t, paths, 4)
}

func TestLoad_TokenNormalized(t *testing.T) {
	project, _ := fixtureProject()
	srcBlock := project.Blocks[project.BlockInsts[0].BlockID]
	srcRegset := srcBlock.RegsetFor(srcBlock.RegsetInsts[0])
	srcRegset.Registers[0].Token = " cfg " // as a hand-edited file might have it
	path := writeProject(t, "soc.json", project)

	loaded, _, err := Load(path)
	require.NoError(t, err)

	block := loaded.Blocks[loaded.BlockInsts[0].BlockID]
	regset := block.RegsetFor(block.RegsetInsts[0])
	require.NotNil(t, regset)
	assert.Equal(t, "CFG", regset.Registers[0].Token)
}

func TestLoad_SeparateProjectsDoNotShareState(t *testing.T) {
	first, firstDepth := fixtureProject()
	second, _ := fixtureProject()

	_, firstRes, err := Load(writeProject(t, "first.json", first))
	require.NoError(t, err)
	_, secondRes, err := Load(writeProject(t, "second.json", second))
	require.NoError(t, err)

	// the second project's resolver must not see the first's parameters
	assert.NotNil(t, firstRes.Finder().Find(firstDepth.UUID))
	assert.Nil(t, secondRes.Finder().Find(firstDepth.UUID))
}

func TestPopulate_ReloadDoesNotDuplicate(t *testing.T) {
	project, _ := fixtureProject()
	res := param.NewResolver(nil)

	Populate(project, res)
	count := res.Finder().Len()
	Populate(project, res)

	assert.Equal(t, count, res.Finder().Len())
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project.xml")
	require.NoError(t, os.WriteFile(path, []byte("<project/>"), 0o644))

	_, _, err := Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoad_MissingFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
