package hub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jfrog/jfrog-client-go/utils/errorutils"
)

const (
	BackendHub    = "hub"
	BackendPython = "python"
)

// Request identifies the split to load and the credential to load it with.
type Request struct {
	DatasetId string
	Config    string
	Split     string
	Token     string
}

// Loader loads every record of a dataset split into memory.
type Loader interface {
	// CheckAvailable reports a MissingDependencyError when the library the loader
	// relies on cannot be used. It never touches the network.
	CheckAvailable() error
	Load(ctx context.Context, req Request) ([]json.RawMessage, error)
}

// LoaderOptions holds the transport settings shared by all backends.
type LoaderOptions struct {
	Endpoint string
	Timeout  time.Duration
	Retries  int
}

// NewLoader returns the loader registered under backend.
func NewLoader(backend string, opts LoaderOptions) (Loader, error) {
	switch backend {
	case "", BackendHub:
		return NewRowsLoader(opts), nil
	case BackendPython:
		return NewDatasetsLoader(), nil
	default:
		return nil, errorutils.CheckErrorf("unknown backend '%s'. Supported backends are %s", backend, SupportedBackends())
	}
}

func SupportedBackends() string {
	return fmt.Sprintf("'%s' or '%s'", BackendHub, BackendPython)
}

// MissingDependencyError is returned when the dataset-access library of a backend is unavailable.
type MissingDependencyError struct {
	Dependency string
	Err        error
}

func (e *MissingDependencyError) Error() string {
	msg := fmt.Sprintf("the '%s' package is required to fetch the dataset", e.Dependency)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MissingDependencyError) Unwrap() error {
	return e.Err
}
