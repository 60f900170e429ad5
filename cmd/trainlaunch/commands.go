package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/classifai/trainlaunch/internal/arch"
	"github.com/classifai/trainlaunch/internal/config"
	"github.com/classifai/trainlaunch/internal/domain"
	"github.com/classifai/trainlaunch/internal/launch"
	"github.com/classifai/trainlaunch/internal/notify"
	"github.com/classifai/trainlaunch/internal/observer"
	"github.com/classifai/trainlaunch/internal/runstore"
)

var (
	training  config.Training
	runsLimit int
)

func init() {
	// train command
	trainCmd := &cobra.Command{
		Use:   "train",
		Short: "Launch a training run",
		RunE:  runTrain,
	}
	f := trainCmd.Flags()
	f.StringVar(&training.PathPrefix, "path_prefix", "", "image root directory")
	f.StringVar(&training.DataInfo, "data_info", "", "label file (file name, class index per row)")
	f.StringVar(&training.ModelDir, "model_dir", "", "artifact root for checkpoints and logs")
	f.StringVar(&training.PythonLoc, "python_loc", "", "directory containing the python interpreter")
	f.StringVar(&training.OS, "os", "Linux", `platform selector ("Windows" or POSIX-like)`)
	f.StringVar(&training.Script, "script", "", "trainer entry script")
	f.IntVar(&training.NumGPUs, "num_gpus", 0, "number of GPUs")
	f.IntVar(&training.NumClasses, "num_classes", 0, "number of classes")
	f.StringVar(&training.Delimiter, "delimiter", "", "label file field delimiter")
	f.StringVar(&training.Architecture, "architecture", "resnet", "network architecture")
	f.IntVar(&training.Depth, "depth", 18, "network depth (ignored for fixed-depth architectures)")
	f.IntVar(&training.BatchSize, "batch_size", 0, "batch size")
	f.StringVar(&training.LogDirTrain, "log_dir_train", "", "output directory name the trainer creates")
	f.BoolVar(&training.Retrain, "retrain", false, "continue training from an existing checkpoint directory")
	f.StringVar(&training.RetrainFrom, "retrain_from", "", "source log directory when retraining")
	f.IntVar(&training.NumEpochs, "num_epochs", 0, "number of epochs")
	f.IntVar(&training.TopN, "top_n", 5, "ranked predictions retained per image")
	f.IntVar(&training.NumCores, "num_cores", 0, "number of CPU cores")
	f.BoolVar(&training.Randomize, "randomize", true, "shuffle training data")
	f.IntVar(&training.MaxToKeep, "max_to_keep", 0, "checkpoints to retain")
	f.BoolVar(&training.PrintCmd, "print_cmd", false, "print the trainer command instead of executing it")
	rootCmd.AddCommand(trainCmd)

	// runs command
	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "List launch history",
		RunE:  runRuns,
	}
	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "number of runs to show")
	rootCmd.AddCommand(runsCmd)

	// config command
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		RunE:  runConfig,
	}
	rootCmd.AddCommand(configCmd)
}

func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	return config.Load(path)
}

// applyDefaults fills launch parameters the caller left unset from the
// config file's [trainer] section.
func applyDefaults(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if !flags.Changed("python_loc") {
		training.PythonLoc = cfg.Trainer.PythonLoc
	}
	if !flags.Changed("script") || training.Script == "" {
		training.Script = cfg.Trainer.Script
	}
	if !flags.Changed("num_gpus") {
		training.NumGPUs = cfg.Trainer.NumGPUs
	}
	if !flags.Changed("num_cores") {
		training.NumCores = cfg.Trainer.NumCores
	}
	if !flags.Changed("batch_size") {
		training.BatchSize = cfg.Trainer.BatchSize
	}
	if !flags.Changed("num_epochs") {
		training.NumEpochs = cfg.Trainer.NumEpochs
	}
	if !flags.Changed("max_to_keep") {
		training.MaxToKeep = cfg.Trainer.MaxToKeep
	}
	if !flags.Changed("delimiter") {
		training.Delimiter = cfg.Trainer.Delimiter
	}
}

func runTrain(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyDefaults(cmd, cfg)

	resolver := arch.NewResolver()
	if cfg.Architectures.ProfilesPath != "" {
		if err := resolver.LoadProfiles(cfg.Architectures.ProfilesPath); err != nil {
			return err
		}
	}

	// Validation, staging, and command assembly. Any error here aborts
	// before a process is spawned.
	command, rp, err := launch.Prepare(&training, resolver)
	if err != nil {
		return err
	}

	store, err := runstore.New(cfg.History.DatabasePath)
	if err != nil {
		return err
	}
	defer store.Close()

	runID := uuid.NewString()
	run := &domain.Run{
		ID:           runID,
		Architecture: training.Architecture,
		Depth:        resolver.EffectiveDepth(training.Architecture, training.Depth),
		ModelDir:     training.ModelDir,
		LogDir:       training.LogDirTrain,
		Command:      command.String(),
		StartedAt:    time.Now(),
	}

	runner := &launch.Runner{
		Stdout:  os.Stdout,
		LogPath: filepath.Join(training.ModelDir, ".trainlaunch.log"),
	}

	if training.PrintCmd {
		run.Status = domain.RunDryRun
		if err := store.SaveRun(run); err != nil {
			return err
		}
		runner.DryRun(command)
		outcome := launch.DryRunOutcome()
		fmt.Println(outcome.Summary)
		return nil
	}

	run.Status = domain.RunRunning
	if err := store.SaveRun(run); err != nil {
		return err
	}

	// Progress reporting while the trainer runs: log when the output
	// directory and checkpoints start appearing.
	platform := training.Platform()
	if platform == domain.PlatformPOSIX {
		stop := watchArtifacts(training.ModelDir, training.LogDirTrain, os.Stdout, os.Stderr)
		defer stop()
	}

	fmt.Printf("Launching trainer: %s\n", command.String())
	result, err := runner.Run(context.Background(), command)
	if err != nil {
		elapsedMS, exitCode := failureRecord(result)
		if ferr := store.FinishRun(runID, domain.RunFailed, time.Now(), elapsedMS, exitCode, err.Error()); ferr != nil {
			fmt.Fprintf(os.Stderr, "warning: recording run outcome: %v\n", ferr)
		}
		return err
	}

	outcome := launch.Report(platform, rp.OutputDir(training.LogDirTrain), training.LogDirTrain, result)

	now := time.Now()
	errMsg := ""
	if outcome.Status == domain.RunFailed {
		errMsg = outcome.Summary
	}
	if err := store.FinishRun(runID, outcome.Status, now, outcome.Elapsed.Milliseconds(), outcome.ExitCode, errMsg); err != nil {
		fmt.Fprintf(os.Stderr, "warning: recording run outcome: %v\n", err)
	}

	notifier := notify.NewMultiNotifier(
		notify.NewDesktopNotifier(cfg.Notifications.Desktop),
		notify.NewSlackNotifier(cfg.Notifications.SlackWebhook),
	)
	if err := notifier.Send(notify.ForOutcome(runID, outcome)); err != nil {
		fmt.Fprintf(os.Stderr, "warning: sending notification: %v\n", err)
	}

	// Post-launch failure is informational, not an abort: the command
	// still exits zero and the summary carries the verdict.
	fmt.Println(outcome.Summary)
	return nil
}

// failureRecord extracts what can be recorded from a failed launch. A
// streaming error after Wait still carries a valid result; a spawn
// failure has none, so exit code -1 marks "never ran".
func failureRecord(result *launch.Result) (elapsedMS int64, exitCode int) {
	if result == nil {
		return 0, -1
	}
	return result.Elapsed.Milliseconds(), result.ExitCode
}

// watchArtifacts starts best-effort progress reporting on the artifact
// directory and returns a stop function. A watcher that cannot be set up
// is warned about rather than failing the launch, so a silent trainer
// isn't mistaken for a stalled one.
func watchArtifacts(modelDir, logDir string, out, errOut io.Writer) func() {
	watcher, err := observer.NewArtifactWatcher(modelDir, logDir, func(paths []string) {
		fmt.Fprintf(out, "trainer wrote %d artifact file(s)\n", len(paths))
	})
	if err != nil {
		fmt.Fprintf(errOut, "warning: artifact watcher unavailable: %v\n", err)
		return func() {}
	}
	return watcher.Stop
}

func runRuns(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := runstore.New(cfg.History.DatabasePath)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.ListRuns(runsLimit)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tARCH\tDEPTH\tLOG DIR\tSTATUS\tELAPSED\tSTARTED")
	for _, r := range runs {
		elapsed := "-"
		if r.ElapsedMS > 0 {
			elapsed = (time.Duration(r.ElapsedMS) * time.Millisecond).String()
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\t%s\n",
			r.ID, r.Architecture, r.Depth, r.LogDir, r.Status, elapsed,
			r.StartedAt.Format(time.RFC3339))
	}
	w.Flush()

	return nil
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}
