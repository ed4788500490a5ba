package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dallingham/regenerate-sub000/pkg/regdb"
	"github.com/dallingham/regenerate-sub000/pkg/regdb/addrmap"
	"github.com/dallingham/regenerate-sub000/pkg/regdb/param"
	"github.com/dallingham/regenerate-sub000/pkg/regdb/projfile"
	"github.com/dallingham/regenerate-sub000/pkg/regdb/writers"
	"github.com/dallingham/regenerate-sub000/pkg/utils"
)

var (
	projectFile string
	outputFile  string
	mapName     string
)

var ExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export generated files from a project",
	Long: `Flattens a project's register address map and exports it in one of the
formats consumed by downstream tools: a readable table, C #define headers,
or Verilog ` + "`define" + ` headers.`,
}

var addrmapCmd = &cobra.Command{
	Use:   "addrmap",
	Short: "Print the flattened address map",
	Run: func(cmd *cobra.Command, args []string) {
		runExport(func(out io.Writer, fileBase string, paths []addrmap.SignalPath) error {
			for _, path := range paths {
				_, err := fmt.Fprintf(out, "%-16s %-16s %-16s %s %4d\n",
					path.BlockInst, path.RegInst, path.Token,
					utils.FormatUintHex(path.Address, 8), path.Width)
				if err != nil {
					return err
				}
			}
			return nil
		})
	},
}

var cdefinesCmd = &cobra.Command{
	Use:   "cdefines",
	Short: "Export the address map as a C #define header",
	Run: func(cmd *cobra.Command, args []string) {
		writer, err := writers.NewCDefinesWriter()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating writer: %v\n", err)
			os.Exit(1)
		}
		runExport(writer.Write)
	},
}

var vdefinesCmd = &cobra.Command{
	Use:   "vdefines",
	Short: "Export the address map as a Verilog `define header",
	Run: func(cmd *cobra.Command, args []string) {
		writer, err := writers.NewVerilogDefinesWriter()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating writer: %v\n", err)
			os.Exit(1)
		}
		runExport(writer.Write)
	},
}

func init() {
	ExportCmd.AddCommand(addrmapCmd, cdefinesCmd, vdefinesCmd)
	ExportCmd.PersistentFlags().StringVarP(&projectFile, "project", "p", "", "Project file (JSON or YAML)")
	ExportCmd.PersistentFlags().StringVarP(&outputFile, "output-file", "o", "", "Output file. If omitted, the output will be written to stdout")
	ExportCmd.PersistentFlags().StringVarP(&mapName, "address-map", "m", "", "Restrict the export to one configured address map")
	ExportCmd.MarkPersistentFlagRequired("project")
}

// runExport loads the project, flattens it (optionally through one
// configured address map), and hands the paths to the renderer.
func runExport(render func(io.Writer, string, []addrmap.SignalPath) error) {
	project, resolver, err := projfile.Load(projectFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading project: %v\n", err)
		os.Exit(1)
	}

	paths, err := flatten(project, resolver)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error flattening address map: %v\n", err)
		os.Exit(1)
	}

	out := io.Writer(os.Stdout)
	fileBase := project.Name
	if outputFile != "" {
		file, err := os.Create(outputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
			os.Exit(1)
		}
		defer file.Close()
		out = file
		fileBase = strings.TrimSuffix(filepath.Base(outputFile), filepath.Ext(outputFile))
	}

	if err := render(out, fileBase, paths); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(2)
	}
}

func flatten(project *regdb.Project, resolver *param.Resolver) ([]addrmap.SignalPath, error) {
	if mapName == "" {
		return addrmap.Build(project, resolver)
	}
	addressMap := project.AddressMapByName(mapName)
	if addressMap == nil {
		return nil, fmt.Errorf("no address map named %q", mapName)
	}
	return addrmap.BuildForMap(project, resolver, addressMap)
}
