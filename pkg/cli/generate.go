package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/forgelab/promptforge/pkg/cli/config"
	"github.com/forgelab/promptforge/pkg/domain/model"
	"github.com/forgelab/promptforge/pkg/service/prompt"
	"github.com/forgelab/promptforge/pkg/usecase"
	"github.com/forgelab/promptforge/pkg/utils/logging"
)

func cmdGenerate() *cli.Command {
	var profile string
	var goal string
	var level string
	var contextField string
	var constraints string
	var offline bool
	var providerCfg config.Provider

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "profile",
			Usage:       "Who the prompt is for (e.g. 'Data Scientist')",
			Required:    true,
			Destination: &profile,
		},
		&cli.StringFlag{
			Name:        "goal",
			Usage:       "What the prompt should achieve",
			Required:    true,
			Destination: &goal,
		},
		&cli.StringFlag{
			Name:        "level",
			Usage:       "Expertise level (Beginner, Intermediate, Advanced, Expert)",
			Value:       "Intermediate",
			Destination: &level,
		},
		&cli.StringFlag{
			Name:        "context",
			Usage:       "Optional additional context",
			Destination: &contextField,
		},
		&cli.StringFlag{
			Name:        "constraints",
			Usage:       "Optional constraints",
			Destination: &constraints,
		},
		&cli.BoolFlag{
			Name:        "offline",
			Usage:       "Use the deterministic offline templates instead of the provider",
			Destination: &offline,
		},
	}
	flags = append(flags, providerCfg.Flags()...)

	return &cli.Command{
		Name:    "generate",
		Aliases: []string{"g"},
		Usage:   "Generate one optimized prompt and print it",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			in := &model.FormInput{
				Profile:     profile,
				Goal:        goal,
				Level:       level,
				Context:     model.OptionalField(contextField),
				Constraints: model.OptionalField(constraints),
			}
			if err := in.Validate(); err != nil {
				return err
			}

			var result *model.GenerationResult
			if offline {
				result = prompt.Fallback(in)
			} else {
				uc := usecase.NewGenerateUseCase(providerCfg.Configure())
				r, err := uc.Generate(ctx, in)
				if err != nil {
					return goerr.Wrap(err, "generation failed")
				}
				result = r
			}

			logging.Default().Info("Generation complete", "offline", offline)

			fmt.Fprintln(os.Stdout, "## Thinking")
			fmt.Fprintln(os.Stdout, result.Thinking)
			fmt.Fprintln(os.Stdout)
			fmt.Fprintln(os.Stdout, "## Prompt")
			fmt.Fprintln(os.Stdout, result.Prompt)
			return nil
		},
	}
}
