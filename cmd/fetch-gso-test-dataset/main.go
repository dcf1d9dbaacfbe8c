// Command fetch-gso-test-dataset downloads the test split of the GSO benchmark
// to assets/gso-dataset.json. The split is gated: HF_TOKEN must hold a
// HuggingFace access token.
package main

import (
	"context"

	"github.com/gso-bench/gso-dataset-fetcher/cli"
	"github.com/gso-bench/gso-dataset-fetcher/fetcher"
	"github.com/jfrog/jfrog-cli-core/v2/utils/coreutils"
)

func main() {
	cli.SetupLogger()
	_, err := cli.Fetch(context.Background(), fetcher.TestVariant(), cli.Overrides{})
	coreutils.ExitOnErr(err)
}
