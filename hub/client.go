package hub

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jfrog/jfrog-client-go/http/jfroghttpclient"
	"github.com/jfrog/jfrog-client-go/utils/errorutils"
	"github.com/jfrog/jfrog-client-go/utils/io/httputils"
	"github.com/jfrog/jfrog-client-go/utils/log"
)

const DefaultEndpoint = "https://datasets-server.huggingface.co"

// maxPageLength is the largest page the dataset viewer serves from /rows.
const maxPageLength = 100

type SplitsResponse struct {
	Splits []struct {
		Dataset string `json:"dataset"`
		Config  string `json:"config"`
		Split   string `json:"split"`
	} `json:"splits"`
}

type RowsResponse struct {
	Rows []struct {
		RowIdx         int             `json:"row_idx"`
		Row            json.RawMessage `json:"row"`
		TruncatedCells []string        `json:"truncated_cells"`
	} `json:"rows"`
	NumRowsTotal   int  `json:"num_rows_total"`
	NumRowsPerPage int  `json:"num_rows_per_page"`
	Partial        bool `json:"partial"`
}

// Client talks to the HuggingFace dataset viewer API.
type Client interface {
	GetSplits(datasetId string) (*SplitsResponse, error)
	GetRows(datasetId, config, split string, offset, length int) (*RowsResponse, error)
}

type httpClient struct {
	baseURL string
	token   string
	client  *jfroghttpclient.JfrogHttpClient
}

func NewClient(ctx context.Context, endpoint, token string, timeout time.Duration, retries int) (Client, error) {
	base := strings.TrimRight(endpoint, "/")
	builder := jfroghttpclient.JfrogClientBuilder().SetContext(ctx).SetRetries(retries)
	if timeout > 0 {
		builder = builder.SetOverallRequestTimeout(timeout)
	}
	cli, err := builder.Build()
	if err != nil {
		return nil, errorutils.CheckError(err)
	}
	return &httpClient{baseURL: base, token: token, client: cli}, nil
}

func (c *httpClient) authHeader() string {
	if c.token != "" {
		return "Bearer " + c.token
	}
	return ""
}

func (c *httpClient) doGET(urlStr string) ([]byte, int, error) {
	details := httputils.HttpClientDetails{Headers: map[string]string{}}
	if h := c.authHeader(); h != "" {
		details.Headers["Authorization"] = h
	}
	resp, body, _, err := c.client.SendGet(urlStr, true, &details)
	if err != nil {
		log.Debug("HTTP GET error for", urlStr, "error:", err.Error())
		return nil, 0, err
	}
	log.Debug("HTTP GET response for", urlStr, "status:", resp.StatusCode)
	return body, resp.StatusCode, nil
}

func (c *httpClient) GetSplits(datasetId string) (*SplitsResponse, error) {
	splitsURL := fmt.Sprintf("%s/splits?dataset=%s", c.baseURL, url.QueryEscape(datasetId))
	body, statusCode, err := c.doGET(splitsURL)
	if err != nil {
		return nil, err
	}
	if statusCode != http.StatusOK {
		return nil, errorutils.CheckErrorf("splits endpoint returned status %d: %s", statusCode, string(body))
	}
	var response SplitsResponse
	if err = json.Unmarshal(body, &response); err != nil {
		return nil, errorutils.CheckErrorf("failed to parse splits response: %v", err)
	}
	return &response, nil
}

func (c *httpClient) GetRows(datasetId, config, split string, offset, length int) (*RowsResponse, error) {
	query := url.Values{}
	query.Set("dataset", datasetId)
	query.Set("config", config)
	query.Set("split", split)
	query.Set("offset", fmt.Sprint(offset))
	query.Set("length", fmt.Sprint(length))
	body, statusCode, err := c.doGET(c.baseURL + "/rows?" + query.Encode())
	if err != nil {
		return nil, err
	}
	if statusCode != http.StatusOK {
		return nil, errorutils.CheckErrorf("rows endpoint returned status %d: %s", statusCode, string(body))
	}
	var response RowsResponse
	if err = json.Unmarshal(body, &response); err != nil {
		return nil, errorutils.CheckErrorf("failed to parse rows response: %v", err)
	}
	return &response, nil
}
