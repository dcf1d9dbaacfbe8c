package fetcher

import (
	"fmt"
	"os"
	"strings"

	"github.com/jfrog/jfrog-client-go/utils/errorutils"
)

const (
	DefaultDatasetId        = "gso-bench/gso"
	DefaultOutputPath       = "assets/gso-dataset.json"
	DefaultCredentialEnvVar = "HF_TOKEN"

	VariantTrain = "train"
	VariantTest  = "test"
)

// Variant describes which split is fetched and whether it needs an access token.
type Variant struct {
	DatasetId          string
	Split              string
	RequiresCredential bool
	CredentialEnvVar   string
}

// TrainVariant fetches the public train split.
func TrainVariant() Variant {
	return Variant{DatasetId: DefaultDatasetId, Split: "train"}
}

// TestVariant fetches the gated test split using the token in HF_TOKEN.
func TestVariant() Variant {
	return Variant{
		DatasetId:          DefaultDatasetId,
		Split:              "test",
		RequiresCredential: true,
		CredentialEnvVar:   DefaultCredentialEnvVar,
	}
}

// VariantByName returns the preset registered under name.
func VariantByName(name string) (Variant, error) {
	switch name {
	case "", VariantTrain:
		return TrainVariant(), nil
	case VariantTest:
		return TestVariant(), nil
	default:
		return Variant{}, errorutils.CheckErrorf("unknown variant '%s'. Supported variants are '%s' or '%s'", name, VariantTrain, VariantTest)
	}
}

// MissingCredentialError is returned when a credentialed variant finds no token in its environment variable.
type MissingCredentialError struct {
	EnvVar string
}

func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("the %s environment variable must be set to fetch this dataset split", e.EnvVar)
}

// ResolveCredential reads the variant's token. Variants without a credential return an empty token.
func (v Variant) ResolveCredential() (string, error) {
	if !v.RequiresCredential {
		return "", nil
	}
	envVar := v.CredentialEnvVar
	if envVar == "" {
		envVar = DefaultCredentialEnvVar
	}
	token := strings.TrimSpace(os.Getenv(envVar))
	if token == "" {
		return "", &MissingCredentialError{EnvVar: envVar}
	}
	return token, nil
}
