package fetcher

import (
	"context"
	"fmt"
	"os"

	"github.com/gso-bench/gso-dataset-fetcher/hub"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/jfrog/jfrog-client-go/utils/errorutils"
	"github.com/jfrog/jfrog-client-go/utils/log"
	"golang.org/x/term"
)

const summaryFormat = "Wrote %d tasks to %s"

// stdoutIsTerminal is replaced in tests.
var stdoutIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Result describes a persisted snapshot.
type Result struct {
	Count int
	Path  string
}

func (r *Result) String() string {
	return fmt.Sprintf(summaryFormat, r.Count, r.Path)
}

// summary is String with the path highlighted when colored is set.
func (r *Result) summary(colored bool) string {
	if !colored {
		return r.String()
	}
	return fmt.Sprintf(summaryFormat, r.Count, text.FgGreen.Sprint(r.Path))
}

// FetchCommand downloads a dataset split and stores it as a JSON snapshot.
type FetchCommand struct {
	variant    Variant
	config     string
	outputPath string
	loader     hub.Loader
}

func NewFetchCommand() *FetchCommand {
	return &FetchCommand{variant: TrainVariant(), outputPath: DefaultOutputPath}
}

// SetVariant sets the dataset, split and credential requirements
func (fc *FetchCommand) SetVariant(variant Variant) *FetchCommand {
	fc.variant = variant
	return fc
}

// SetConfig sets the dataset config name. Empty means the loader picks one.
func (fc *FetchCommand) SetConfig(config string) *FetchCommand {
	fc.config = config
	return fc
}

// SetOutputPath sets where the snapshot is written
func (fc *FetchCommand) SetOutputPath(outputPath string) *FetchCommand {
	fc.outputPath = outputPath
	return fc
}

// SetLoader sets the backend used to load the records
func (fc *FetchCommand) SetLoader(loader hub.Loader) *FetchCommand {
	fc.loader = loader
	return fc
}

func (fc *FetchCommand) CommandName() string {
	return "gso_fetch"
}

// Run checks the loader and credential, fetches the split and persists it.
// Nothing is written unless the whole split was loaded.
func (fc *FetchCommand) Run(ctx context.Context) (*Result, error) {
	if fc.loader == nil {
		return nil, errorutils.CheckErrorf("no dataset loader configured")
	}
	if fc.variant.DatasetId == "" || fc.variant.Split == "" {
		return nil, errorutils.CheckErrorf("dataset id and split cannot be empty")
	}
	if fc.outputPath == "" {
		return nil, errorutils.CheckErrorf("output path cannot be empty")
	}
	if err := fc.loader.CheckAvailable(); err != nil {
		return nil, err
	}
	token, err := fc.variant.ResolveCredential()
	if err != nil {
		return nil, err
	}
	snapshot, err := Fetch(ctx, fc.loader, hub.Request{
		DatasetId: fc.variant.DatasetId,
		Config:    fc.config,
		Split:     fc.variant.Split,
		Token:     token,
	})
	if err != nil {
		return nil, err
	}
	if err = Persist(snapshot, fc.outputPath); err != nil {
		return nil, err
	}
	result := &Result{Count: len(snapshot), Path: fc.outputPath}
	log.Output(result.summary(stdoutIsTerminal()))
	return result, nil
}

// Fetch loads every record of the requested split into memory.
func Fetch(ctx context.Context, loader hub.Loader, req hub.Request) (Snapshot, error) {
	records, err := loader.Load(ctx, req)
	if err != nil {
		return nil, err
	}
	log.Debug("Loaded", len(records), "records from", req.DatasetId, req.Split)
	return Snapshot(records), nil
}
