package hub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockHubClient struct {
	mock.Mock
}

func (m *MockHubClient) GetSplits(datasetId string) (*SplitsResponse, error) {
	args := m.Called(datasetId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*SplitsResponse), args.Error(1)
}

func (m *MockHubClient) GetRows(datasetId, config, split string, offset, length int) (*RowsResponse, error) {
	args := m.Called(datasetId, config, split, offset, length)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*RowsResponse), args.Error(1)
}

func newTestRowsLoader(client Client) *RowsLoader {
	loader := NewRowsLoader(LoaderOptions{})
	loader.newClient = func(context.Context, string, string, time.Duration, int) (Client, error) {
		return client, nil
	}
	return loader
}

func splits(pairs ...string) *SplitsResponse {
	resp := &SplitsResponse{}
	for i := 0; i+1 < len(pairs); i += 2 {
		resp.Splits = append(resp.Splits, struct {
			Dataset string `json:"dataset"`
			Config  string `json:"config"`
			Split   string `json:"split"`
		}{Dataset: "gso-bench/gso", Config: pairs[i], Split: pairs[i+1]})
	}
	return resp
}

func rowsPage(total, from, count int) *RowsResponse {
	resp := &RowsResponse{NumRowsTotal: total, NumRowsPerPage: maxPageLength}
	for i := from; i < from+count; i++ {
		resp.Rows = append(resp.Rows, struct {
			RowIdx         int             `json:"row_idx"`
			Row            json.RawMessage `json:"row"`
			TruncatedCells []string        `json:"truncated_cells"`
		}{RowIdx: i, Row: json.RawMessage(fmt.Sprintf(`{"instance_id":"task-%d"}`, i))})
	}
	return resp
}

func TestRowsLoader_Load_PagesThroughSplit(t *testing.T) {
	client := &MockHubClient{}
	client.On("GetSplits", "gso-bench/gso").Return(splits("default", "train"), nil)
	client.On("GetRows", "gso-bench/gso", "default", "train", 0, maxPageLength).Return(rowsPage(150, 0, 100), nil)
	client.On("GetRows", "gso-bench/gso", "default", "train", 100, maxPageLength).Return(rowsPage(150, 100, 50), nil)

	records, err := newTestRowsLoader(client).Load(context.Background(), Request{DatasetId: "gso-bench/gso", Split: "train"})
	require.NoError(t, err)
	require.Len(t, records, 150)
	assert.JSONEq(t, `{"instance_id":"task-0"}`, string(records[0]))
	assert.JSONEq(t, `{"instance_id":"task-149"}`, string(records[149]))
	client.AssertExpectations(t)
}

func TestRowsLoader_Load_ConfiguredConfigSkipsSplitsLookup(t *testing.T) {
	client := &MockHubClient{}
	client.On("GetRows", "gso-bench/gso", "custom", "test", 0, maxPageLength).Return(rowsPage(2, 0, 2), nil)

	records, err := newTestRowsLoader(client).Load(context.Background(), Request{DatasetId: "gso-bench/gso", Config: "custom", Split: "test"})
	require.NoError(t, err)
	assert.Len(t, records, 2)
	client.AssertNotCalled(t, "GetSplits", mock.Anything)
}

func TestRowsLoader_Load_EmptySplit(t *testing.T) {
	client := &MockHubClient{}
	client.On("GetRows", "gso-bench/gso", "default", "train", 0, maxPageLength).Return(rowsPage(0, 0, 0), nil)

	records, err := newTestRowsLoader(client).Load(context.Background(), Request{DatasetId: "gso-bench/gso", Config: "default", Split: "train"})
	assert.NoError(t, err)
	assert.Empty(t, records)
}

func TestRowsLoader_Load_UnknownSplit(t *testing.T) {
	client := &MockHubClient{}
	client.On("GetSplits", "gso-bench/gso").Return(splits("default", "train"), nil)

	_, err := newTestRowsLoader(client).Load(context.Background(), Request{DatasetId: "gso-bench/gso", Split: "validation"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "split 'validation' not found")
}

func TestRowsLoader_Load_EmptyPageBeforeTotal(t *testing.T) {
	client := &MockHubClient{}
	client.On("GetRows", "gso-bench/gso", "default", "train", 0, maxPageLength).Return(rowsPage(5, 0, 3), nil)
	client.On("GetRows", "gso-bench/gso", "default", "train", 3, maxPageLength).Return(rowsPage(5, 3, 0), nil)

	_, err := newTestRowsLoader(client).Load(context.Background(), Request{DatasetId: "gso-bench/gso", Config: "default", Split: "train"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "empty page at offset 3 of 5")
}

func TestRowsLoader_Load_PartialSplit(t *testing.T) {
	page := rowsPage(2, 0, 2)
	page.Partial = true
	client := &MockHubClient{}
	client.On("GetRows", "gso-bench/gso", "default", "train", 0, maxPageLength).Return(page, nil)

	records, err := newTestRowsLoader(client).Load(context.Background(), Request{DatasetId: "gso-bench/gso", Config: "default", Split: "train"})
	assert.Nil(t, records)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "partial copy of split 'train'")
	assert.Contains(t, err.Error(), "--backend python")
}

func TestRowsLoader_Load_TruncatedCells(t *testing.T) {
	page := rowsPage(2, 0, 2)
	page.Rows[1].TruncatedCells = []string{"prob_script"}
	client := &MockHubClient{}
	client.On("GetRows", "gso-bench/gso", "default", "train", 0, maxPageLength).Return(page, nil)

	records, err := newTestRowsLoader(client).Load(context.Background(), Request{DatasetId: "gso-bench/gso", Config: "default", Split: "train"})
	assert.Nil(t, records)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 1 of split 'train' has truncated cells [prob_script]")
	assert.Contains(t, err.Error(), "--backend python")
}

func TestRowsLoader_Load_PropagatesRemoteError(t *testing.T) {
	remoteErr := errors.New("connection reset by peer")
	client := &MockHubClient{}
	client.On("GetRows", "gso-bench/gso", "default", "train", 0, maxPageLength).Return(nil, remoteErr)

	_, err := newTestRowsLoader(client).Load(context.Background(), Request{DatasetId: "gso-bench/gso", Config: "default", Split: "train"})
	assert.ErrorIs(t, err, remoteErr)
}

func TestRowsLoader_Load_CanceledContext(t *testing.T) {
	client := &MockHubClient{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestRowsLoader(client).Load(ctx, Request{DatasetId: "gso-bench/gso", Config: "default", Split: "train"})
	assert.ErrorIs(t, err, context.Canceled)
	client.AssertNotCalled(t, "GetRows", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRowsLoader_CheckAvailable(t *testing.T) {
	testCases := []struct {
		testName string
		endpoint string
		wantErr  bool
	}{
		{"default endpoint", "", false},
		{"custom endpoint", "http://localhost:8080", false},
		{"missing scheme", "datasets-server.huggingface.co", true},
		{"garbage", "://", true},
	}
	for _, tc := range testCases {
		t.Run(tc.testName, func(t *testing.T) {
			err := NewRowsLoader(LoaderOptions{Endpoint: tc.endpoint}).CheckAvailable()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewLoader(t *testing.T) {
	loader, err := NewLoader("", LoaderOptions{})
	require.NoError(t, err)
	assert.IsType(t, &RowsLoader{}, loader)

	loader, err = NewLoader(BackendPython, LoaderOptions{})
	require.NoError(t, err)
	assert.IsType(t, &DatasetsLoader{}, loader)

	_, err = NewLoader("parquet", LoaderOptions{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown backend 'parquet'")
}
