package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	"github.com/forgelab/promptforge/pkg/domain/model"
)

// Levels holds the optional TOML file that overrides the wording of
// the expertise level definitions.
type Levels struct {
	path string
}

// Flags returns CLI flags for levels configuration
func (l *Levels) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "levels-config",
			Usage:       "TOML file overriding expertise level names and descriptions",
			Sources:     cli.EnvVars("PROMPTFORGE_LEVELS_CONFIG"),
			Destination: &l.path,
		},
	}
}

type levelsFile struct {
	Levels []model.LevelDefinition `toml:"level"`
}

// Configure loads the level definitions. Without a file the built-in
// defaults are used. A file replaces the wording but must cover only
// known level IDs, each at most once.
func (l *Levels) Configure() ([]model.LevelDefinition, error) {
	defs := model.DefaultLevelDefinitions()
	if l.path == "" {
		return defs, nil
	}

	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(ErrConfigNotFound, "levels config file does not exist", goerr.V(ConfigPathKey, l.path))
		}
		return nil, goerr.Wrap(err, "failed to read levels config", goerr.V(ConfigPathKey, l.path))
	}

	var file levelsFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(err, "failed to parse levels config", goerr.V(ConfigPathKey, l.path))
	}

	seen := map[string]bool{}
	for _, def := range file.Levels {
		if err := def.ID.Validate(); err != nil {
			return nil, goerr.Wrap(ErrInvalidLevelsFile, "unknown level ID", goerr.V(LevelIDKey, def.ID))
		}
		if seen[def.ID.String()] {
			return nil, goerr.Wrap(ErrInvalidLevelsFile, "duplicate level ID", goerr.V(LevelIDKey, def.ID))
		}
		seen[def.ID.String()] = true

		if def.Name == "" {
			return nil, goerr.Wrap(ErrInvalidLevelsFile, "level name is required", goerr.V(LevelIDKey, def.ID))
		}

		for i := range defs {
			if defs[i].ID == def.ID {
				defs[i].Name = def.Name
				if def.Description != "" {
					defs[i].Description = def.Description
				}
			}
		}
	}

	return defs, nil
}
