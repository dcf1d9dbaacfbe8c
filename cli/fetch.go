package cli

import (
	"context"

	"github.com/gso-bench/gso-dataset-fetcher/config"
	"github.com/gso-bench/gso-dataset-fetcher/fetcher"
	"github.com/gso-bench/gso-dataset-fetcher/hub"
)

// Overrides are command-line values that take precedence over the loaded configuration.
// Empty strings and nil pointers leave the configured value untouched.
type Overrides struct {
	OutputPath     string
	Backend        string
	DatasetId      string
	Split          string
	Config         string
	TokenEnv       string
	TimeoutSeconds *int
	Retries        *int
}

func (o Overrides) apply(cfg *config.FetchConfig) {
	if o.OutputPath != "" {
		cfg.Output.Path = o.OutputPath
	}
	if o.Backend != "" {
		cfg.Hub.Backend = o.Backend
	}
	if o.DatasetId != "" {
		cfg.Dataset.Id = o.DatasetId
	}
	if o.Split != "" {
		cfg.Dataset.Split = o.Split
	}
	if o.Config != "" {
		cfg.Dataset.Config = o.Config
	}
	if o.TokenEnv != "" {
		cfg.Dataset.CredentialEnvVar = o.TokenEnv
	}
	if o.TimeoutSeconds != nil {
		cfg.Hub.TimeoutSeconds = *o.TimeoutSeconds
	}
	if o.Retries != nil {
		cfg.Hub.Retries = *o.Retries
	}
}

// Fetch resolves the configuration of variant and runs a fetch with it.
func Fetch(ctx context.Context, variant fetcher.Variant, overrides Overrides) (*fetcher.Result, error) {
	cfg, err := config.LoadFetchConfig(variant)
	if err != nil {
		return nil, err
	}
	overrides.apply(cfg)
	loader, err := hub.NewLoader(cfg.Hub.Backend, cfg.LoaderOptions())
	if err != nil {
		return nil, err
	}
	outputPath, err := cfg.ResolveOutputPath()
	if err != nil {
		return nil, err
	}
	return fetcher.NewFetchCommand().
		SetVariant(cfg.Variant()).
		SetConfig(cfg.Dataset.Config).
		SetOutputPath(outputPath).
		SetLoader(loader).
		Run(ctx)
}
