package config

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/gso-bench/gso-dataset-fetcher/fetcher"
	"github.com/gso-bench/gso-dataset-fetcher/hub"
	"github.com/jfrog/jfrog-client-go/utils/errorutils"
	"github.com/jfrog/jfrog-client-go/utils/io/fileutils"
	"github.com/jfrog/jfrog-client-go/utils/log"
	"github.com/spf13/viper"
)

const (
	gsoDir        = ".gso"
	gitDir        = ".git"
	fetchFileYml  = "fetch.yml"
	fetchFileYaml = "fetch.yaml"

	keyDatasetId        = "dataset.id"
	keyDatasetConfig    = "dataset.config"
	keyDatasetSplit     = "dataset.split"
	keyCredentialEnvVar = "dataset.credentialEnvVar"
	keyOutputPath       = "output.path"
	keyBackend          = "hub.backend"
	keyEndpoint         = "hub.endpoint"
	keyTimeoutSeconds   = "hub.timeoutSeconds"
	keyRetries          = "hub.retries"

	envDatasetId        = "GSO_DATASET_ID"
	envDatasetConfig    = "GSO_DATASET_CONFIG"
	envDatasetSplit     = "GSO_DATASET_SPLIT"
	envCredentialEnvVar = "GSO_CREDENTIAL_ENV"
	envOutputPath       = "GSO_OUTPUT_PATH"
	envBackend          = "GSO_BACKEND"
	envEndpoint         = "GSO_ROWS_ENDPOINT"
	envTimeoutSeconds   = "GSO_TIMEOUT_SECONDS"
	envRetries          = "GSO_RETRIES"
)

type DatasetConfig struct {
	Id               string `mapstructure:"id"`
	Config           string `mapstructure:"config"`
	Split            string `mapstructure:"split"`
	CredentialEnvVar string `mapstructure:"credentialEnvVar"`
}

type OutputConfig struct {
	Path string `mapstructure:"path"`
}

type HubConfig struct {
	Backend        string `mapstructure:"backend"`
	Endpoint       string `mapstructure:"endpoint"`
	TimeoutSeconds int    `mapstructure:"timeoutSeconds"`
	Retries        int    `mapstructure:"retries"`
}

// FetchConfig is the resolved configuration of a single fetch run.
type FetchConfig struct {
	Dataset DatasetConfig `mapstructure:"dataset"`
	Output  OutputConfig  `mapstructure:"output"`
	Hub     HubConfig     `mapstructure:"hub"`
	// RequiresCredential comes from the variant and cannot be overridden.
	RequiresCredential bool `mapstructure:"-"`
}

// LoadFetchConfig layers, from lowest to highest priority: the variant
// defaults, .gso/fetch.yml found upstream of the working directory (or in the
// home directory), and GSO_* environment variables.
func LoadFetchConfig(variant fetcher.Variant) (*FetchConfig, error) {
	if root, exists, _ := fileutils.FindUpstream(gsoDir, fileutils.Dir); exists {
		for _, name := range []string{fetchFileYml, fetchFileYaml} {
			if path := filepath.Join(root, gsoDir, name); fileExists(path) {
				return readConfigWithEnv(variant, path)
			}
		}
	}
	if home, err := homeDir(); err == nil && home != "" {
		for _, name := range []string{fetchFileYml, fetchFileYaml} {
			if path := filepath.Join(home, gsoDir, name); fileExists(path) {
				return readConfigWithEnv(variant, path)
			}
		}
	}
	return readConfigWithEnv(variant, "")
}

func readConfigWithEnv(variant fetcher.Variant, path string) (*FetchConfig, error) {
	v := viper.New()

	v.SetDefault(keyDatasetId, variant.DatasetId)
	v.SetDefault(keyDatasetSplit, variant.Split)
	v.SetDefault(keyDatasetConfig, "")
	v.SetDefault(keyCredentialEnvVar, variant.CredentialEnvVar)
	v.SetDefault(keyOutputPath, fetcher.DefaultOutputPath)
	v.SetDefault(keyBackend, hub.BackendHub)
	v.SetDefault(keyEndpoint, hub.DefaultEndpoint)
	v.SetDefault(keyTimeoutSeconds, 0)
	v.SetDefault(keyRetries, 0)

	_ = v.BindEnv(keyDatasetId, envDatasetId)
	_ = v.BindEnv(keyDatasetConfig, envDatasetConfig)
	_ = v.BindEnv(keyDatasetSplit, envDatasetSplit)
	_ = v.BindEnv(keyCredentialEnvVar, envCredentialEnvVar)
	_ = v.BindEnv(keyOutputPath, envOutputPath)
	_ = v.BindEnv(keyBackend, envBackend)
	_ = v.BindEnv(keyEndpoint, envEndpoint)
	_ = v.BindEnv(keyTimeoutSeconds, envTimeoutSeconds)
	_ = v.BindEnv(keyRetries, envRetries)

	if path != "" {
		log.Debug("Reading fetch configuration from", path)
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errorutils.CheckErrorf("failed to read %s: %w", path, err)
		}
	}

	cfg := new(FetchConfig)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errorutils.CheckError(err)
	}
	cfg.RequiresCredential = variant.RequiresCredential
	if cfg.Hub.TimeoutSeconds < 0 || cfg.Hub.Retries < 0 {
		return nil, errorutils.CheckErrorf("hub timeout and retries cannot be negative")
	}
	return cfg, nil
}

// Variant returns the fetch variant described by the configuration.
func (fc *FetchConfig) Variant() fetcher.Variant {
	return fetcher.Variant{
		DatasetId:          fc.Dataset.Id,
		Split:              fc.Dataset.Split,
		RequiresCredential: fc.RequiresCredential,
		CredentialEnvVar:   fc.Dataset.CredentialEnvVar,
	}
}

func (fc *FetchConfig) LoaderOptions() hub.LoaderOptions {
	return hub.LoaderOptions{
		Endpoint: fc.Hub.Endpoint,
		Timeout:  time.Duration(fc.Hub.TimeoutSeconds) * time.Second,
		Retries:  fc.Hub.Retries,
	}
}

// ResolveOutputPath anchors a relative output path at the repository root: the
// nearest ancestor of the working directory holding .git, else the working directory.
func (fc *FetchConfig) ResolveOutputPath() (string, error) {
	path := strings.TrimSpace(fc.Output.Path)
	if path == "" {
		return "", errorutils.CheckErrorf("output path cannot be empty")
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	root, exists, err := fileutils.FindUpstream(gitDir, fileutils.Any)
	if err != nil {
		return "", errorutils.CheckError(err)
	}
	if !exists {
		if root, err = filepath.Abs("."); err != nil {
			return "", errorutils.CheckError(err)
		}
	}
	return filepath.Join(root, path), nil
}
