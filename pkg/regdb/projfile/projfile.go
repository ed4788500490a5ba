// Package projfile reads and writes register-database project files. A
// project file is the persisted form of the whole entity graph and may be
// JSON or YAML, selected by file extension.
package projfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dallingham/regenerate-sub000/pkg/regdb"
	"github.com/dallingham/regenerate-sub000/pkg/regdb/param"
	"github.com/dallingham/regenerate-sub000/pkg/utils"
)

// ErrUnsupportedFormat reports a project file extension that is neither JSON
// nor YAML.
var ErrUnsupportedFormat = errors.New("unsupported project file format")

// Load reads a project file and returns the project together with a fresh
// resolver primed with the project's parameters and overrides. Every load
// gets its own resolver, so two loaded projects never share parameter state.
func Load(path string) (*regdb.Project, *param.Resolver, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	prj := &regdb.Project{}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json", ".rprj":
		if err := json.Unmarshal(data, prj); err != nil {
			return nil, nil, fmt.Errorf("decoding %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, prj); err != nil {
			return nil, nil, fmt.Errorf("decoding %s: %w", path, err)
		}
	default:
		return nil, nil, utils.MakeError(ErrUnsupportedFormat, "%q", ext)
	}

	res := param.NewResolver(param.NewRegistry())
	Populate(prj, res)
	return prj, res, nil
}

// Save writes the project in the format selected by the path's extension.
func Save(path string, prj *regdb.Project) error {
	var data []byte
	var err error

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json", ".rprj":
		data, err = json.MarshalIndent(prj, "", "    ")
	case ".yaml", ".yml":
		data, err = yaml.Marshal(prj)
	default:
		return utils.MakeError(ErrUnsupportedFormat, "%q", ext)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Populate clears the resolver and reloads it from the project: parameter
// definitions first (unregister-then-register, so repopulating after a
// reload never leaves stale or duplicate entries), then the override
// tables. Register tokens are re-normalized and out-of-range parameter
// defaults are logged as warnings, matching the interactive editor's
// soft-validation behavior.
func Populate(prj *regdb.Project, res *param.Resolver) {
	prj.RegisterParams(res)

	for _, block := range prj.Blocks {
		for _, def := range block.Parameters {
			warnRange(block.Name, def)
		}
		for _, regset := range block.Regsets {
			for _, def := range regset.Parameters {
				warnRange(regset.Name, def)
			}
			for _, reg := range regset.Registers {
				reg.NormalizeToken()
			}
		}
	}
}

func warnRange(owner string, def *param.Definition) {
	if !def.RangeOK() {
		slog.Warn("parameter default outside declared range",
			"owner", owner,
			"parameter", def.Name,
			"value", def.Default,
			"min", def.Min,
			"max", def.Max)
	}
}
