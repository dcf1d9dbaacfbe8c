// Command fetch-gso-dataset downloads the public train split of the GSO
// benchmark to assets/gso-dataset.json.
package main

import (
	"context"

	"github.com/gso-bench/gso-dataset-fetcher/cli"
	"github.com/gso-bench/gso-dataset-fetcher/fetcher"
	"github.com/jfrog/jfrog-cli-core/v2/utils/coreutils"
)

func main() {
	cli.SetupLogger()
	_, err := cli.Fetch(context.Background(), fetcher.TrainVariant(), cli.Overrides{})
	coreutils.ExitOnErr(err)
}
