package config

import (
	"fmt"

	"github.com/classifai/trainlaunch/internal/domain"
)

// Training holds every parameter of a single launch. It is assembled once
// from config-file defaults plus CLI flags and treated as read-only from
// then on.
type Training struct {
	PathPrefix   string // image root the trainer reads from
	DataInfo     string // user-supplied label file (file name, class index)
	ModelDir     string // artifact root for checkpoints and logs
	PythonLoc    string // directory containing the python interpreter
	OS           string // platform selector: "Windows" or POSIX-like
	Script       string // trainer entry script, invoked as <python> <script> train
	NumGPUs      int
	NumClasses   int
	Delimiter    string
	Architecture string
	Depth        int
	BatchSize    int
	LogDirTrain  string // output directory name the trainer creates
	Retrain      bool
	RetrainFrom  string // source log directory when retraining
	NumEpochs    int
	TopN         int
	NumCores     int
	Randomize    bool
	MaxToKeep    int
	PrintCmd     bool // dry-run: print the command instead of executing
}

// Platform returns the closed platform variant for the os selector.
func (t *Training) Platform() domain.Platform {
	return domain.ParsePlatform(t.OS)
}

// ConfigurationError reports an invalid parameter combination. It is fatal
// and raised before any filesystem mutation or process spawn.
type ConfigurationError struct {
	Field   string
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Message)
}

// Validate checks cross-field constraints. It has no side effects and must
// run before staging or launching so a failure never leaves partial state.
func (t *Training) Validate() error {
	if t.TopN > t.NumClasses {
		return &ConfigurationError{
			Field:   "top_n",
			Message: fmt.Sprintf("top_n (%d) must not exceed num_classes (%d)", t.TopN, t.NumClasses),
		}
	}
	return nil
}
