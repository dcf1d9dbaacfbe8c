package cli

import (
	"os"
	"strings"

	"github.com/jfrog/jfrog-client-go/utils/log"
)

const logLevelEnv = "JFROG_CLI_LOG_LEVEL"

// SetupLogger installs the CLI logger at the level named by JFROG_CLI_LOG_LEVEL (INFO by default).
func SetupLogger() {
	log.SetLogger(log.NewLogger(logLevel(), nil))
}

func logLevel() log.LevelType {
	switch strings.ToUpper(os.Getenv(logLevelEnv)) {
	case "DEBUG":
		return log.DEBUG
	case "WARN":
		return log.WARN
	case "ERROR":
		return log.ERROR
	default:
		return log.INFO
	}
}
