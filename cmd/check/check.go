package check

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dallingham/regenerate-sub000/pkg/regdb/addrmap"
	"github.com/dallingham/regenerate-sub000/pkg/regdb/projfile"
)

var projectFile string

var (
	colorError = color.New(color.FgRed, color.Bold)
	colorOk    = color.New(color.FgGreen)
)

var CheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the address space of a project",
	Long: `Loads a project file, resolves every repeat count and offset, and scans the
resulting address spans for problems:

  - register-set instances whose address ranges overlap
  - replica spacing smaller than the register set's own address space
  - registers not aligned to their width

The command exits non-zero if any problem is found. Run it before trusting
an exported address map for RTL generation.`,
	Run: runCheck,
}

func init() {
	CheckCmd.Flags().StringVarP(&projectFile, "project", "p", "", "Project file (JSON or YAML)")
	CheckCmd.MarkFlagRequired("project")
}

func runCheck(cmd *cobra.Command, args []string) {
	project, resolver, err := projfile.Load(projectFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading project: %v\n", err)
		os.Exit(1)
	}

	problems, err := addrmap.Check(project, resolver)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error checking address space: %v\n", err)
		os.Exit(1)
	}

	if len(problems) == 0 {
		colorOk.Printf("%s: address space is clean\n", project.Name)
		return
	}

	for _, problem := range problems {
		colorError.Fprintln(os.Stderr, problem.String())
	}
	fmt.Fprintf(os.Stderr, "%d problem(s) found\n", len(problems))
	os.Exit(2)
}
