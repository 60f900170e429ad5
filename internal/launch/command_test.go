package launch

import (
	"strings"
	"testing"

	"github.com/classifai/trainlaunch/internal/config"
	"github.com/classifai/trainlaunch/internal/paths"
)

func sampleTraining() *config.Training {
	return &config.Training{
		PathPrefix:   "/data/images",
		DataInfo:     "/data/labels.csv",
		ModelDir:     "/data/models",
		PythonLoc:    "/usr/bin/",
		OS:           "Mac",
		Script:       "main.py",
		NumGPUs:      2,
		NumClasses:   59,
		Delimiter:    ",",
		Architecture: "resnet",
		Depth:        18,
		BatchSize:    64,
		LogDirTrain:  "logs_resnet18",
		Retrain:      false,
		RetrainFrom:  "",
		NumEpochs:    10,
		TopN:         5,
		NumCores:     8,
		Randomize:    true,
		MaxToKeep:    5,
	}
}

// flagValue returns the value following the given flag, or "" if absent.
func flagValue(args []string, flag string) string {
	for i, a := range args {
		if a == flag && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func hasFlag(args []string, flag string) bool {
	for _, a := range args {
		if a == flag {
			return true
		}
	}
	return false
}

func TestBuild_AlwaysIncludedFlags(t *testing.T) {
	tr := sampleTraining()
	rp := paths.Resolve(tr.ModelDir, tr.PythonLoc, tr.Platform())

	cmd := Build(tr, rp, 18)

	if cmd.Path != "/usr/bin/python" {
		t.Errorf("Path = %q, want /usr/bin/python", cmd.Path)
	}
	if cmd.Dir != "/data/models" {
		t.Errorf("Dir = %q, want /data/models", cmd.Dir)
	}
	if cmd.Args[0] != "main.py" || cmd.Args[1] != "train" {
		t.Errorf("Args[0:2] = %v, want [main.py train]", cmd.Args[:2])
	}

	wantPairs := map[string]string{
		"--path_prefix":  "/data/images",
		"--architecture": "resnet",
		"--depth":        "18",
		"--num_gpus":     "2",
		"--batch_size":   "64",
		"--data_info":    "data_info_train.csv",
		"--delimiter":    ",",
		"--num_epochs":   "10",
		"--top_n":        "5",
		"--num_cores":    "8",
		"--num_classes":  "59",
		"--randomize":    "true",
		"--max_to_keep":  "5",
	}
	for flag, want := range wantPairs {
		if got := flagValue(cmd.Args, flag); got != want {
			t.Errorf("%s = %q, want %q", flag, got, want)
		}
	}
}

func TestBuild_RetrainFlag(t *testing.T) {
	tr := sampleTraining()
	rp := paths.Resolve(tr.ModelDir, tr.PythonLoc, tr.Platform())

	// retrain=false omits the source flag
	cmd := Build(tr, rp, 18)
	if hasFlag(cmd.Args, "--retrain_from") {
		t.Error("--retrain_from present with retrain=false")
	}

	// retrain=true includes it
	tr.Retrain = true
	tr.RetrainFrom = "logs_prev"
	cmd = Build(tr, rp, 18)
	if got := flagValue(cmd.Args, "--retrain_from"); got != "logs_prev" {
		t.Errorf("--retrain_from = %q, want logs_prev", got)
	}
}

func TestBuild_LogDirOmittedOnWindows(t *testing.T) {
	tr := sampleTraining()
	tr.OS = "Windows"
	tr.PythonLoc = `C:\Python39\`
	tr.ModelDir = `C:\models`
	rp := paths.Resolve(tr.ModelDir, tr.PythonLoc, tr.Platform())

	for _, retrain := range []bool{false, true} {
		tr.Retrain = retrain
		tr.RetrainFrom = "logs_prev"
		cmd := Build(tr, rp, 18)
		if hasFlag(cmd.Args, "--log_dir") {
			t.Errorf("--log_dir present on Windows (retrain=%v)", retrain)
		}
	}

	// Any non-Windows platform includes it
	tr.OS = "Mac"
	tr.PythonLoc = "/usr/bin/"
	tr.ModelDir = "/data/models"
	rp = paths.Resolve(tr.ModelDir, tr.PythonLoc, tr.Platform())
	cmd := Build(tr, rp, 18)
	if got := flagValue(cmd.Args, "--log_dir"); got != "logs_resnet18" {
		t.Errorf("--log_dir = %q, want logs_resnet18", got)
	}
}

func TestBuild_DeterministicRendering(t *testing.T) {
	tr := sampleTraining()
	rp := paths.Resolve(tr.ModelDir, tr.PythonLoc, tr.Platform())

	first := Build(tr, rp, 18).String()
	second := Build(tr, rp, 18).String()
	if first != second {
		t.Errorf("rendering not deterministic:\n%s\n%s", first, second)
	}
	if !strings.HasPrefix(first, "/usr/bin/python main.py train ") {
		t.Errorf("rendering = %q, want python main.py train prefix", first)
	}
}
