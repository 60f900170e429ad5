// Package launch assembles and executes the external trainer invocation.
package launch

import (
	"strconv"
	"strings"

	"github.com/classifai/trainlaunch/internal/config"
	"github.com/classifai/trainlaunch/internal/domain"
	"github.com/classifai/trainlaunch/internal/paths"
)

// Command is a fully assembled trainer invocation: a structured argument
// vector plus the working directory the trainer runs from. It is passed
// straight to the process spawn, never through a shell, so paths with
// spaces or metacharacters need no quoting.
type Command struct {
	Path string   // interpreter
	Args []string // script, "train", flag/value pairs
	Dir  string   // working directory for the trainer
}

// Argv returns the complete argument vector, interpreter first.
func (c *Command) Argv() []string {
	return append([]string{c.Path}, c.Args...)
}

// String renders the command for display (dry-run, history). The
// rendering is informational only; execution uses the structured Argv.
func (c *Command) String() string {
	return strings.Join(c.Argv(), " ")
}

// Build assembles the trainer invocation from the launch parameters, the
// resolved paths, and the effective depth. The retrain-source flag is
// included only when retraining; the output-directory flag is omitted on
// Windows, where the trainer does not accept it (see Report for the
// matching verification gap).
func Build(t *config.Training, rp paths.Resolved, effectiveDepth int) *Command {
	args := []string{
		t.Script, "train",
		"--path_prefix", t.PathPrefix,
		"--architecture", t.Architecture,
		"--depth", strconv.Itoa(effectiveDepth),
		"--num_gpus", strconv.Itoa(t.NumGPUs),
		"--batch_size", strconv.Itoa(t.BatchSize),
		"--data_info", paths.StagedLabelName,
		"--delimiter", t.Delimiter,
		"--num_epochs", strconv.Itoa(t.NumEpochs),
		"--top_n", strconv.Itoa(t.TopN),
		"--num_cores", strconv.Itoa(t.NumCores),
		"--num_classes", strconv.Itoa(t.NumClasses),
		"--randomize", strconv.FormatBool(t.Randomize),
		"--max_to_keep", strconv.Itoa(t.MaxToKeep),
	}

	if t.Retrain {
		args = append(args, "--retrain_from", t.RetrainFrom)
	}
	if t.Platform() != domain.PlatformWindows {
		args = append(args, "--log_dir", t.LogDirTrain)
	}

	return &Command{
		Path: rp.Interpreter(),
		Args: args,
		Dir:  rp.WorkDir,
	}
}
