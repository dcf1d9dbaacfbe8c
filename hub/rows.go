package hub

import (
	"context"
	"encoding/json"
	"net/url"
	"time"

	"github.com/jfrog/jfrog-client-go/utils/errorutils"
	"github.com/jfrog/jfrog-client-go/utils/log"
)

const fullCopyHint = "Use '--backend python' to load the complete split"

// RowsLoader materializes a split by paging through the dataset viewer /rows endpoint.
type RowsLoader struct {
	endpoint string
	timeout  time.Duration
	retries  int
	// newClient is replaced in tests.
	newClient func(ctx context.Context, endpoint, token string, timeout time.Duration, retries int) (Client, error)
}

func NewRowsLoader(opts LoaderOptions) *RowsLoader {
	endpoint := opts.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &RowsLoader{
		endpoint:  endpoint,
		timeout:   opts.Timeout,
		retries:   opts.Retries,
		newClient: NewClient,
	}
}

func (rl *RowsLoader) CheckAvailable() error {
	u, err := url.Parse(rl.endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errorutils.CheckErrorf("invalid dataset viewer endpoint: %s", rl.endpoint)
	}
	return nil
}

func (rl *RowsLoader) Load(ctx context.Context, req Request) ([]json.RawMessage, error) {
	client, err := rl.newClient(ctx, rl.endpoint, req.Token, rl.timeout, rl.retries)
	if err != nil {
		return nil, err
	}
	config := req.Config
	if config == "" {
		if config, err = resolveConfig(client, req.DatasetId, req.Split); err != nil {
			return nil, err
		}
	}
	log.Info("Fetching", req.DatasetId, "config:", config, "split:", req.Split)
	return fetchAllRows(ctx, client, req.DatasetId, config, req.Split)
}

// resolveConfig returns the first config of the dataset that owns split.
func resolveConfig(client Client, datasetId, split string) (string, error) {
	splits, err := client.GetSplits(datasetId)
	if err != nil {
		return "", err
	}
	for _, s := range splits.Splits {
		if s.Split == split {
			log.Debug("Resolved config", s.Config, "for split", split)
			return s.Config, nil
		}
	}
	return "", errorutils.CheckErrorf("split '%s' not found in dataset '%s'", split, datasetId)
}

func fetchAllRows(ctx context.Context, client Client, datasetId, config, split string) ([]json.RawMessage, error) {
	var records []json.RawMessage
	total := -1
	for total < 0 || len(records) < total {
		if err := ctx.Err(); err != nil {
			return nil, errorutils.CheckError(err)
		}
		page, err := client.GetRows(datasetId, config, split, len(records), maxPageLength)
		if err != nil {
			return nil, err
		}
		total = page.NumRowsTotal
		if page.Partial {
			return nil, errorutils.CheckErrorf("the dataset viewer only serves a partial copy of split '%s'. %s", split, fullCopyHint)
		}
		if len(page.Rows) == 0 && len(records) < total {
			return nil, errorutils.CheckErrorf("rows endpoint returned an empty page at offset %d of %d", len(records), total)
		}
		for _, row := range page.Rows {
			if len(row.TruncatedCells) > 0 {
				return nil, errorutils.CheckErrorf("row %d of split '%s' has truncated cells %v. %s", row.RowIdx, split, row.TruncatedCells, fullCopyHint)
			}
			records = append(records, row.Row)
		}
		log.Debug("Fetched", len(records), "of", total, "rows")
	}
	return records, nil
}
