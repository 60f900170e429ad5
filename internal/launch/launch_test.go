package launch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/classifai/trainlaunch/internal/arch"
	"github.com/classifai/trainlaunch/internal/config"
	"github.com/classifai/trainlaunch/internal/paths"
)

// prepareTraining builds a launch config backed by real temp files.
func prepareTraining(t *testing.T) *config.Training {
	t.Helper()

	labelFile := filepath.Join(t.TempDir(), "labels.csv")
	if err := os.WriteFile(labelFile, []byte("a.jpg,0\nb.jpg,1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	tr := sampleTraining()
	tr.DataInfo = labelFile
	tr.ModelDir = t.TempDir()
	return tr
}

func TestPrepare_EndToEnd(t *testing.T) {
	tr := prepareTraining(t)
	tr.Retrain = true
	tr.RetrainFrom = "logs_prev"

	cmd, rp, err := Prepare(tr, arch.NewResolver())
	if err != nil {
		t.Fatalf("Prepare() = %v, want nil", err)
	}

	// resnet passes the user depth through
	if got := flagValue(cmd.Args, "--architecture"); got != "resnet" {
		t.Errorf("--architecture = %q, want resnet", got)
	}
	if got := flagValue(cmd.Args, "--depth"); got != "18" {
		t.Errorf("--depth = %q, want 18", got)
	}
	if got := flagValue(cmd.Args, "--retrain_from"); got != "logs_prev" {
		t.Errorf("--retrain_from = %q, want logs_prev", got)
	}
	if got := flagValue(cmd.Args, "--log_dir"); got != "logs_resnet18" {
		t.Errorf("--log_dir = %q, want logs_resnet18", got)
	}

	// Label file was staged under the canonical name
	staged, err := os.ReadFile(rp.StagedLabelPath)
	if err != nil {
		t.Fatalf("reading staged label file: %v", err)
	}
	if string(staged) != "a.jpg,0\nb.jpg,1\n" {
		t.Errorf("staged content = %q", staged)
	}
}

func TestPrepare_FixedDepthOverride(t *testing.T) {
	tr := prepareTraining(t)
	tr.Architecture = "alexnet"
	tr.Depth = 152 // ignored

	cmd, _, err := Prepare(tr, arch.NewResolver())
	if err != nil {
		t.Fatal(err)
	}
	if got := flagValue(cmd.Args, "--depth"); got != "8" {
		t.Errorf("--depth = %q, want 8", got)
	}
}

func TestPrepare_ValidationFailsBeforeStaging(t *testing.T) {
	tr := prepareTraining(t)
	tr.TopN = 60
	tr.NumClasses = 59

	_, _, err := Prepare(tr, arch.NewResolver())
	if err == nil {
		t.Fatal("Prepare() = nil, want ConfigurationError")
	}
	if _, ok := err.(*config.ConfigurationError); !ok {
		t.Fatalf("error type = %T, want *config.ConfigurationError", err)
	}

	// No file may be written when validation fails
	staged := filepath.Join(tr.ModelDir, paths.StagedLabelName)
	if _, statErr := os.Stat(staged); !os.IsNotExist(statErr) {
		t.Errorf("staged label file exists after validation failure")
	}
}

func TestPrepare_StagingFailureAbortsBeforeBuild(t *testing.T) {
	tr := prepareTraining(t)
	tr.DataInfo = filepath.Join(t.TempDir(), "missing.csv")

	cmd, _, err := Prepare(tr, arch.NewResolver())
	if err == nil {
		t.Fatal("Prepare() = nil, want StagingError")
	}
	if cmd != nil {
		t.Error("Prepare() returned a command despite staging failure")
	}
}
