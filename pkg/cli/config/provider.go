package config

import (
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/forgelab/promptforge/pkg/service/llm"
)

// Provider holds CLI flags for the LLM provider. The API key falls
// back through the well-known env vars of the supported providers, in
// order, so existing credentials keep working unchanged.
type Provider struct {
	apiKey   string
	endpoint string
	model    string
}

// Flags returns CLI flags for provider configuration
func (p *Provider) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "api-key",
			Usage:       "API key for the chat completions provider",
			Sources:     cli.EnvVars("OPENAI_API_KEY", "ANTHROPIC_API_KEY", "GROQ_API_KEY"),
			Destination: &p.apiKey,
		},
		&cli.StringFlag{
			Name:        "api-url",
			Usage:       "Chat completions endpoint URL",
			Value:       llm.DefaultEndpoint,
			Sources:     cli.EnvVars("PROMPTFORGE_API_URL"),
			Destination: &p.endpoint,
		},
		&cli.StringFlag{
			Name:        "model",
			Usage:       "Model identifier sent to the provider",
			Value:       llm.DefaultModel,
			Sources:     cli.EnvVars("PROMPTFORGE_MODEL"),
			Destination: &p.model,
		},
	}
}

// LogAttrs returns log attributes without exposing the key itself
func (p *Provider) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.Bool("api_key_set", p.apiKey != ""),
		slog.String("endpoint", p.endpoint),
		slog.String("model", p.model),
	}
}

// HasCredential reports whether any provider API key was resolved
func (p *Provider) HasCredential() bool {
	return p.apiKey != ""
}

// Configure builds the completion client. A client without a
// credential is still returned; the use case layer reports the
// missing key per request, matching a server that starts fine but
// cannot generate.
func (p *Provider) Configure() *llm.Client {
	return llm.New(p.apiKey,
		llm.WithEndpoint(p.endpoint),
		llm.WithModel(p.model),
	)
}
