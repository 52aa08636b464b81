package cli_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/forgelab/promptforge/pkg/cli"
)

func TestGenerateOffline(t *testing.T) {
	err := cli.Run(context.Background(), []string{
		"promptforge", "generate", "--offline",
		"--profile", "Data Scientist",
		"--goal", "Clean a messy dataset",
		"--level", "Advanced",
	}, "test")
	gt.NoError(t, err)
}

func TestGenerateRequiresProfile(t *testing.T) {
	err := cli.Run(context.Background(), []string{
		"promptforge", "generate", "--offline",
		"--goal", "Clean a messy dataset",
	}, "test")
	gt.Error(t, err)
}

func TestUnknownLogLevelFails(t *testing.T) {
	err := cli.Run(context.Background(), []string{
		"promptforge", "--log-level", "verbose", "generate", "--offline",
		"--profile", "p", "--goal", "g",
	}, "test")
	gt.Error(t, err)
}
