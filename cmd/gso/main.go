// Command gso is the GSO dataset CLI. Its fetch command downloads the train
// or test split with flags for the output path, backend and transport settings.
package main

import (
	"github.com/gso-bench/gso-dataset-fetcher/cli"
	"github.com/jfrog/jfrog-cli-core/v2/plugins"
)

func main() {
	cli.SetupLogger()
	plugins.PluginMain(cli.GetGsoApp())
}
