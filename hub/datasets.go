package hub

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	gofrogcmd "github.com/jfrog/gofrog/io"
	"github.com/jfrog/jfrog-client-go/utils/errorutils"
	"github.com/jfrog/jfrog-client-go/utils/io/fileutils"
	"github.com/jfrog/jfrog-client-go/utils/log"
)

const (
	datasetsPackage  = "datasets"
	snapshotFileName = "snapshot.json"
)

// pythonCandidates are tried in order. The first interpreter that is Python 3
// and can import the datasets package wins.
var pythonCandidates = []string{"python3", "python"}

// availabilityScript exits non-zero unless the interpreter is Python 3 and
// the datasets package imports cleanly.
const availabilityScript = "import sys, datasets; sys.exit(0 if sys.version_info.major >= 3 else 1)"

// loadDatasetScript dumps a split to the file named by argv[1]. It accepts the
// JSON encoded load_dataset keyword arguments as argv[2]. Non-finite floats
// fail the dump since they have no JSON encoding.
const loadDatasetScript = `import sys,json
from datasets import load_dataset
ds=load_dataset(**json.loads(sys.argv[2]))
with open(sys.argv[1],"w",encoding="utf-8") as f:
	json.dump([row for row in ds],f,default=str,allow_nan=False)`

// DatasetsLoader loads a split through the Python 'datasets' library.
type DatasetsLoader struct {
	pythonPath string
}

func NewDatasetsLoader() *DatasetsLoader {
	return &DatasetsLoader{}
}

func (dl *DatasetsLoader) CheckAvailable() error {
	pythonPath, err := findPython()
	if err != nil {
		return &MissingDependencyError{Dependency: datasetsPackage, Err: err}
	}
	dl.pythonPath = pythonPath
	return nil
}

func (dl *DatasetsLoader) Load(ctx context.Context, req Request) (records []json.RawMessage, err error) {
	if dl.pythonPath == "" {
		if err = dl.CheckAvailable(); err != nil {
			return nil, err
		}
	}
	tempDir, err := fileutils.CreateTempDir()
	if err != nil {
		return nil, errorutils.CheckError(err)
	}
	defer func() {
		if removeErr := fileutils.RemoveTempDir(tempDir); removeErr != nil && err == nil {
			err = removeErr
		}
	}()
	args, err := loadDatasetArgs(req)
	if err != nil {
		return nil, err
	}
	snapshotPath := filepath.Join(tempDir, snapshotFileName)
	cmd := &datasetsCommand{
		ctx:        ctx,
		pythonPath: dl.pythonPath,
		args:       []string{"-c", loadDatasetScript, snapshotPath, args},
		token:      req.Token,
	}
	log.Info("Loading", req.DatasetId, "split:", req.Split, "with the Python", datasetsPackage, "package")
	if err = gofrogcmd.RunCmd(cmd); err != nil {
		return nil, errorutils.CheckErrorf("load_dataset failed: %w", err)
	}
	content, err := os.ReadFile(snapshotPath)
	if err != nil {
		return nil, errorutils.CheckError(err)
	}
	if err = json.Unmarshal(content, &records); err != nil {
		return nil, errorutils.CheckErrorf("failed to parse load_dataset output: %w", err)
	}
	return records, nil
}

func loadDatasetArgs(req Request) (string, error) {
	args := map[string]interface{}{
		"path":  req.DatasetId,
		"split": req.Split,
	}
	if req.Config != "" {
		args["name"] = req.Config
	}
	if req.Token != "" {
		args["token"] = req.Token
	}
	argsJSON, err := json.Marshal(args)
	if err != nil {
		return "", errorutils.CheckErrorf("failed to marshal arguments to JSON: %w", err)
	}
	return string(argsJSON), nil
}

// datasetsCommand implements gofrog's CmdConfig for the load_dataset subprocess.
type datasetsCommand struct {
	ctx        context.Context
	pythonPath string
	args       []string
	token      string
	stdWriter  *debugLogWriter
}

func (dc *datasetsCommand) GetCmd() *exec.Cmd {
	return exec.CommandContext(dc.ctx, dc.pythonPath, dc.args...)
}

func (dc *datasetsCommand) GetEnv() map[string]string {
	if dc.token == "" {
		return map[string]string{}
	}
	return map[string]string{"HF_TOKEN": dc.token}
}

// GetStdWriter keeps the subprocess output off stdout, which carries only the summary.
func (dc *datasetsCommand) GetStdWriter() io.WriteCloser {
	if dc.stdWriter == nil {
		dc.stdWriter = &debugLogWriter{}
	}
	return dc.stdWriter
}

func (dc *datasetsCommand) GetErrWriter() io.WriteCloser {
	return nil
}

func findPython() (string, error) {
	found := false
	for _, candidate := range pythonCandidates {
		pythonPath, err := exec.LookPath(candidate)
		if err != nil {
			continue
		}
		found = true
		if err = exec.Command(pythonPath, "-c", availabilityScript).Run(); err != nil {
			log.Debug("Skipping", pythonPath+":", err.Error())
			continue
		}
		log.Debug("Using Python interpreter", pythonPath)
		return pythonPath, nil
	}
	if !found {
		return "", errorutils.CheckErrorf("neither python3 nor python found in PATH")
	}
	return "", errorutils.CheckErrorf("no Python 3 interpreter in PATH can import it. Install it using: pip install %s", datasetsPackage)
}

// debugLogWriter forwards subprocess output to the debug log, one entry per line.
// A trailing partial line is held until the next write or Close.
type debugLogWriter struct {
	pending bytes.Buffer
}

func (w *debugLogWriter) Write(p []byte) (int, error) {
	w.pending.Write(p)
	for {
		idx := bytes.IndexByte(w.pending.Bytes(), '\n')
		if idx < 0 {
			break
		}
		line := string(w.pending.Next(idx + 1))
		w.logLine(line)
	}
	return len(p), nil
}

func (w *debugLogWriter) Close() error {
	if w.pending.Len() > 0 {
		w.logLine(w.pending.String())
		w.pending.Reset()
	}
	return nil
}

func (w *debugLogWriter) logLine(line string) {
	if line = strings.TrimRight(line, "\r\n"); line != "" {
		log.Debug(line)
	}
}
