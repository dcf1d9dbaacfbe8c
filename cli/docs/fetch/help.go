package fetch

import "github.com/jfrog/jfrog-cli-core/v2/plugins/components"

var Usage = []string{"gso fetch [train|test]"}

func GetDescription() string {
	return "Download a GSO benchmark dataset split and store it as a JSON snapshot."
}

func GetArguments() []components.Argument {
	return []components.Argument{
		{
			Name:        "variant",
			Description: "The dataset variant to fetch: 'train' (public, default) or 'test' (requires the HF_TOKEN environment variable).",
			Optional:    true,
		},
	}
}
