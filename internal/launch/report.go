package launch

import (
	"fmt"
	"os"

	"github.com/classifai/trainlaunch/internal/domain"
)

// Report infers the outcome of a finished trainer run. The child exit
// code is the primary signal; on POSIX the presence of the expected
// output directory under the artifact root is checked as a secondary
// sanity check. On Windows no directory check is performed and
// completion is reported unconditionally: the trainer was invoked
// without --log_dir there, so the launcher has nothing to verify
// against. The summary says so explicitly rather than hiding the gap.
func Report(platform domain.Platform, outputDir, logDirTrain string, res *Result) *domain.Outcome {
	out := &domain.Outcome{
		Elapsed:  res.Elapsed,
		ExitCode: res.ExitCode,
	}

	if platform == domain.PlatformWindows {
		out.Status = domain.RunCompleted
		out.Summary = fmt.Sprintf(
			"Training finished in %v. Output verification is skipped on Windows; "+
				"check the artifact directory manually before using the model.",
			res.Elapsed)
		return out
	}

	if info, err := os.Stat(outputDir); err == nil && info.IsDir() {
		out.OutputDirFound = true
	}

	switch {
	case res.ExitCode != 0:
		out.Status = domain.RunFailed
		out.Summary = fmt.Sprintf(
			"Training failed after %v: trainer exited with code %d.",
			res.Elapsed, res.ExitCode)
	case !out.OutputDirFound:
		out.Status = domain.RunFailed
		out.Summary = fmt.Sprintf(
			"Training ran for %v but the expected output directory %q was not created. "+
				"The run most likely failed; inspect the trainer output.",
			res.Elapsed, outputDir)
	default:
		out.Status = domain.RunCompleted
		out.Summary = fmt.Sprintf(
			"Training completed in %v. Model artifacts are in %q. "+
				"Pass %q as the model-selection parameter of the classification stage.",
			res.Elapsed, outputDir, logDirTrain)
	}
	return out
}

// DryRunOutcome is the terminal outcome of a dry run: nothing was
// spawned, nothing is verified.
func DryRunOutcome() *domain.Outcome {
	return &domain.Outcome{
		Status:  domain.RunDryRun,
		Summary: "Dry run: command printed, trainer not executed.",
	}
}
