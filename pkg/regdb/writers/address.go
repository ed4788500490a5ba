// Package writers renders the flattened address map into the header formats
// consumed by firmware and RTL builds.
package writers

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/dallingham/regenerate-sub000/pkg/regdb/addrmap"
	"github.com/dallingham/regenerate-sub000/pkg/utils"
)

// ErrUnknownWidth reports a register width with no mapped C type.
var ErrUnknownWidth = errors.New("no C type for register width")

// CTypeMap maps register widths in bits to the C type used for the
// register's pointer cast.
var CTypeMap = map[int]string{
	8:  "unsigned char",
	16: "unsigned short",
	32: "unsigned long",
	64: "unsigned long long",
}

const cDefinesTemplate = `#ifndef __{{.Guard}}_H__
#define __{{.Guard}}_H__

{{range .Defines}}#define {{.Name}} ((volatile {{.CType}} *)0x{{printf "%x" .Address}})
{{end}}
#endif
`

const verilogDefinesTemplate = `{{range .Defines}}` + "`define" + ` {{.Name}} {{.Width}}'h{{printf "%x" .Address}}
{{end}}`

type define struct {
	Name    string
	CType   string
	Address uint64
	Width   int
}

type templateData struct {
	Guard   string
	Defines []define
}

// AddressWriter renders a flat address list through a template. Use the
// NewCDefinesWriter and NewVerilogDefinesWriter constructors.
type AddressWriter struct {
	tmpl     *template.Template
	typeMap  map[int]string
	needType bool
}

// NewCDefinesWriter creates a writer producing C #define headers.
func NewCDefinesWriter() (*AddressWriter, error) {
	tmpl, err := template.New("cdefines").Parse(cDefinesTemplate)
	if err != nil {
		return nil, err
	}
	return &AddressWriter{tmpl: tmpl, typeMap: CTypeMap, needType: true}, nil
}

// NewVerilogDefinesWriter creates a writer producing Verilog `define headers.
func NewVerilogDefinesWriter() (*AddressWriter, error) {
	tmpl, err := template.New("vdefines").Parse(verilogDefinesTemplate)
	if err != nil {
		return nil, err
	}
	return &AddressWriter{tmpl: tmpl}, nil
}

// Write renders the flattened paths. fileBase names the output and becomes
// the include guard for C headers.
func (w *AddressWriter) Write(out io.Writer, fileBase string, paths []addrmap.SignalPath) error {
	var badWidth error
	defines := utils.Map(paths, func(path addrmap.SignalPath) define {
		d := define{
			Name:    defineName(path),
			Address: path.Address,
			Width:   path.Width,
		}
		if w.needType {
			ctype, ok := w.typeMap[path.Width]
			if !ok && badWidth == nil {
				badWidth = utils.MakeError(ErrUnknownWidth, "%d bits (%s)", path.Width, d.Name)
			}
			d.CType = ctype
		}
		return d
	})
	if badWidth != nil {
		return badWidth
	}

	return w.tmpl.Execute(out, templateData{
		Guard:   strings.ToUpper(strings.ReplaceAll(fileBase, ".", "_")),
		Defines: defines,
	})
}

func defineName(path addrmap.SignalPath) string {
	name := fmt.Sprintf("%s_%s_%s", path.BlockInst, path.RegInst, path.Token)
	return strings.ToUpper(name)
}
