package cli

import (
	"github.com/jfrog/jfrog-cli-core/v2/plugins/components"
)

const (
	output        = "output"
	backend       = "backend"
	dataset       = "dataset"
	split         = "split"
	datasetConfig = "config"
	tokenEnv      = "token-env"
	timeout       = "timeout"
	retries       = "retries"
)

func getFetchFlags() []components.Flag {
	return []components.Flag{
		components.NewStringFlag(output, "Output file path. Relative paths are resolved from the repository root. Default: assets/gso-dataset.json", components.SetMandatoryFalse()),
		components.NewStringFlag(backend, "Dataset loader backend: 'hub' (HuggingFace dataset viewer API) or 'python' (the Python 'datasets' package). Default: hub", components.SetMandatoryFalse()),
		components.NewStringFlag(dataset, "HuggingFace dataset ID. Default: gso-bench/gso", components.SetMandatoryFalse()),
		components.NewStringFlag(split, "Dataset split to fetch. Overrides the variant's split.", components.SetMandatoryFalse()),
		components.NewStringFlag(datasetConfig, "Dataset config name. If not provided, the config owning the split is used.", components.SetMandatoryFalse()),
		components.NewStringFlag(tokenEnv, "Environment variable holding the HuggingFace access token for credentialed variants. Default: HF_TOKEN", components.SetMandatoryFalse()),
		components.NewStringFlag(timeout, "HTTP timeout in seconds for the 'hub' backend. Default: no timeout", components.SetMandatoryFalse()),
		components.NewStringFlag(retries, "Number of HTTP retries for the 'hub' backend. Default: 0", components.SetMandatoryFalse()),
	}
}
