// Package paths derives the filesystem locations a launch works with from
// the raw launch parameters. It is pure string computation; nothing here
// touches the filesystem or the process working directory. The working
// directory for the external trainer is carried on the launch command and
// applied at spawn time instead of chdir'ing the launcher itself.
package paths

import (
	"strings"

	"github.com/classifai/trainlaunch/internal/domain"
)

// StagedLabelName is the canonical file name the label file is staged
// under inside the artifact directory. The external trainer reads it by
// this exact name.
const StagedLabelName = "data_info_train.csv"

// Resolved holds the derived locations for one launch.
type Resolved struct {
	// WorkDir is the artifact root the trainer runs from. It is the
	// user-supplied model_dir verbatim; the per-run log directory name is
	// tracked separately and resolved by the trainer itself.
	WorkDir string
	// PythonDir is the interpreter location, normalized to end in a
	// path separator so the interpreter name can be appended directly.
	PythonDir string
	// StagedLabelPath is where the canonical label file is written.
	StagedLabelPath string

	platform domain.Platform
}

// Resolve computes the locations for the given parameters.
func Resolve(modelDir, pythonLoc string, platform domain.Platform) Resolved {
	sep := "/"
	if platform == domain.PlatformWindows {
		sep = `\`
	}
	if pythonLoc != "" && !strings.HasSuffix(pythonLoc, "/") && !strings.HasSuffix(pythonLoc, `\`) {
		pythonLoc += sep
	}
	workDir := modelDir
	labelPath := workDir
	if labelPath != "" && !strings.HasSuffix(labelPath, "/") && !strings.HasSuffix(labelPath, `\`) {
		labelPath += sep
	}
	return Resolved{
		WorkDir:         workDir,
		PythonDir:       pythonLoc,
		StagedLabelPath: labelPath + StagedLabelName,
		platform:        platform,
	}
}

// Interpreter returns the full path of the python executable.
func (r Resolved) Interpreter() string {
	if r.platform == domain.PlatformWindows {
		return r.PythonDir + "python.exe"
	}
	return r.PythonDir + "python"
}

// OutputDir returns the trainer's expected output directory for the given
// log directory name.
func (r Resolved) OutputDir(logDirTrain string) string {
	base := r.WorkDir
	sep := "/"
	if r.platform == domain.PlatformWindows {
		sep = `\`
	}
	if base != "" && !strings.HasSuffix(base, "/") && !strings.HasSuffix(base, `\`) {
		base += sep
	}
	return base + logDirTrain
}
