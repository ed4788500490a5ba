package writers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dallingham/regenerate-sub000/pkg/regdb/addrmap"
)

var testPaths = []addrmap.SignalPath{
	{BlockInst: "chip0", RegInst: "ctrl_0", Token: "cfg", Address: 0x2044, Width: 32},
	{BlockInst: "chip0", RegInst: "ctrl_1", Token: "cfg", Address: 0x2064, Width: 32},
	{BlockInst: "chip0", RegInst: "status", Token: "stat", Address: 0x2100, Width: 16},
}

func TestCDefinesWriter_Output(t *testing.T) {
	writer, err := NewCDefinesWriter()
	require.NoError(t, err)

	var out strings.Builder
	require.NoError(t, writer.Write(&out, "soc_regs", testPaths))

	text := out.String()
	assert.Contains(t, text, "#ifndef __SOC_REGS_H__")
	assert.Contains(t, text, "#define CHIP0_CTRL_0_CFG ((volatile unsigned long *)0x2044)")
	assert.Contains(t, text, "#define CHIP0_CTRL_1_CFG ((volatile unsigned long *)0x2064)")
	assert.Contains(t, text, "#define CHIP0_STATUS_STAT ((volatile unsigned short *)0x2100)")
	assert.Contains(t, text, "#endif")
}

func TestCDefinesWriter_UnknownWidth(t *testing.T) {
	writer, err := NewCDefinesWriter()
	require.NoError(t, err)

	paths := []addrmap.SignalPath{
		{BlockInst: "chip0", RegInst: "odd", Token: "odd", Address: 0x0, Width: 24},
	}

	var out strings.Builder
	err = writer.Write(&out, "soc_regs", paths)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownWidth)
}

func TestVerilogDefinesWriter_Output(t *testing.T) {
	writer, err := NewVerilogDefinesWriter()
	require.NoError(t, err)

	var out strings.Builder
	require.NoError(t, writer.Write(&out, "soc_regs", testPaths))

	text := out.String()
	assert.Contains(t, text, "`define CHIP0_CTRL_0_CFG 32'h2044")
	assert.Contains(t, text, "`define CHIP0_STATUS_STAT 16'h2100")
}
