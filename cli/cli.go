package cli

import (
	"context"
	"strconv"

	"github.com/gso-bench/gso-dataset-fetcher/cli/docs/fetch"
	"github.com/gso-bench/gso-dataset-fetcher/commonutils"
	"github.com/gso-bench/gso-dataset-fetcher/fetcher"
	pluginsCommon "github.com/jfrog/jfrog-cli-core/v2/plugins/common"
	"github.com/jfrog/jfrog-cli-core/v2/plugins/components"
	"github.com/jfrog/jfrog-client-go/utils/errorutils"
)

const (
	appName         = "gso"
	appVersion      = "v1.0.0"
	datasetCategory = "Dataset"
)

func GetGsoApp() components.App {
	app := components.CreateEmbeddedApp(appName, GetCommands())
	app.Description = "Fetch GSO benchmark datasets from the HuggingFace Hub."
	app.Version = appVersion
	return app
}

func GetCommands() []components.Command {
	return []components.Command{
		{
			Name:        "fetch",
			Aliases:     []string{"f"},
			Description: fetch.GetDescription(),
			Arguments:   fetch.GetArguments(),
			Flags:       getFetchFlags(),
			Action:      fetchCmd,
			Category:    datasetCategory,
		},
	}
}

// fetchFunc is replaced in tests.
var fetchFunc = Fetch

func fetchCmd(c *components.Context) error {
	if c.GetNumberOfArgs() > 1 {
		if c.PrintCommandHelp != nil {
			return pluginsCommon.WrongNumberOfArgumentsHandler(c)
		}
		return errorutils.CheckErrorf("wrong number of arguments. Expected at most 1, got %d", c.GetNumberOfArgs())
	}
	variantName := ""
	if c.GetNumberOfArgs() == 1 {
		variantName = c.GetArgumentAt(0)
	}
	variant, err := fetcher.VariantByName(variantName)
	if err != nil {
		return err
	}
	overrides, err := overridesFromFlags(c)
	if err != nil {
		return err
	}
	_, err = fetchFunc(context.Background(), variant, overrides)
	return err
}

func overridesFromFlags(c *components.Context) (Overrides, error) {
	overrides := Overrides{
		OutputPath: c.GetStringFlagValue(output),
		Backend:    c.GetStringFlagValue(backend),
		DatasetId:  c.GetStringFlagValue(dataset),
		Split:      c.GetStringFlagValue(split),
		Config:     c.GetStringFlagValue(datasetConfig),
		TokenEnv:   c.GetStringFlagValue(tokenEnv),
	}
	if c.IsFlagSet(timeout) {
		value := c.GetStringFlagValue(timeout)
		if !commonutils.IsFlagPositiveNumber(value) {
			return Overrides{}, errorutils.CheckErrorf("--%s must be a positive number of seconds, got '%s'", timeout, value)
		}
		seconds, _ := strconv.Atoi(value)
		overrides.TimeoutSeconds = &seconds
	}
	if c.IsFlagSet(retries) {
		value := c.GetStringFlagValue(retries)
		if !commonutils.IsFlagNonNegativeNumber(value) {
			return Overrides{}, errorutils.CheckErrorf("--%s must be a non-negative number, got '%s'", retries, value)
		}
		count, _ := strconv.Atoi(value)
		overrides.Retries = &count
	}
	return overrides, nil
}
