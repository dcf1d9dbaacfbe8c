package fetcher

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/jfrog/jfrog-client-go/utils/io/fileutils"
	"github.com/pkg/errors"
)

const jsonIndent = "  "

// Snapshot is the ordered set of records fetched in one run. Each record is
// kept as the raw JSON the upstream produced.
type Snapshot []json.RawMessage

// Persist writes snapshot to outputPath as an indented JSON array, creating
// parent directories and replacing any previous file.
func Persist(snapshot Snapshot, outputPath string) error {
	content, err := encodeSnapshot(snapshot)
	if err != nil {
		return err
	}
	if err = fileutils.CreateDirIfNotExist(filepath.Dir(outputPath)); err != nil {
		return errors.Wrapf(err, "failed to create directory for %s", outputPath)
	}
	if err = os.WriteFile(outputPath, content, 0644); err != nil {
		return errors.Wrapf(err, "failed to write %s", outputPath)
	}
	return nil
}

func encodeSnapshot(snapshot Snapshot) ([]byte, error) {
	if snapshot == nil {
		snapshot = Snapshot{}
	}
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", jsonIndent)
	if err := encoder.Encode(snapshot); err != nil {
		return nil, errors.Wrap(err, "failed to encode dataset snapshot")
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
