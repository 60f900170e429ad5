package paths

import (
	"testing"

	"github.com/classifai/trainlaunch/internal/domain"
)

func TestResolve_AppendsInterpreterSeparator(t *testing.T) {
	rp := Resolve("/data/models", "/usr/local/bin", domain.PlatformPOSIX)
	if rp.PythonDir != "/usr/local/bin/" {
		t.Errorf("PythonDir = %q, want /usr/local/bin/", rp.PythonDir)
	}

	// Already-terminated paths stay unchanged
	rp = Resolve("/data/models", "/usr/local/bin/", domain.PlatformPOSIX)
	if rp.PythonDir != "/usr/local/bin/" {
		t.Errorf("PythonDir = %q, want /usr/local/bin/", rp.PythonDir)
	}
}

func TestResolve_WindowsSeparator(t *testing.T) {
	rp := Resolve(`C:\models`, `C:\Python39`, domain.PlatformWindows)
	if rp.PythonDir != `C:\Python39\` {
		t.Errorf("PythonDir = %q, want C:\\Python39\\", rp.PythonDir)
	}
	if got := rp.Interpreter(); got != `C:\Python39\python.exe` {
		t.Errorf("Interpreter() = %q, want C:\\Python39\\python.exe", got)
	}
	if got := rp.StagedLabelPath; got != `C:\models\`+StagedLabelName {
		t.Errorf("StagedLabelPath = %q, want C:\\models\\%s", got, StagedLabelName)
	}
}

func TestResolve_WorkDirIsModelDirVerbatim(t *testing.T) {
	rp := Resolve("/data/models", "/usr/bin/", domain.PlatformPOSIX)
	// No sub-path is appended; the log directory name is resolved by the
	// trainer itself.
	if rp.WorkDir != "/data/models" {
		t.Errorf("WorkDir = %q, want /data/models", rp.WorkDir)
	}
	if rp.StagedLabelPath != "/data/models/"+StagedLabelName {
		t.Errorf("StagedLabelPath = %q, want /data/models/%s", rp.StagedLabelPath, StagedLabelName)
	}
}

func TestInterpreter_POSIX(t *testing.T) {
	rp := Resolve("/data/models", "/opt/conda/bin", domain.PlatformPOSIX)
	if got := rp.Interpreter(); got != "/opt/conda/bin/python" {
		t.Errorf("Interpreter() = %q, want /opt/conda/bin/python", got)
	}
}

func TestOutputDir(t *testing.T) {
	rp := Resolve("/data/models", "/usr/bin/", domain.PlatformPOSIX)
	if got := rp.OutputDir("logs_resnet18"); got != "/data/models/logs_resnet18" {
		t.Errorf("OutputDir() = %q, want /data/models/logs_resnet18", got)
	}
}
