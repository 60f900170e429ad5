package launch

import (
	"github.com/classifai/trainlaunch/internal/arch"
	"github.com/classifai/trainlaunch/internal/config"
	"github.com/classifai/trainlaunch/internal/paths"
	"github.com/classifai/trainlaunch/internal/staging"
)

// Prepare takes a launch from raw parameters to an executable command:
// validate, resolve paths, stage the label file, resolve the effective
// depth, build the invocation. Validation runs first so a bad parameter
// combination never touches the filesystem; staging is the only side
// effect and happens before the command is built.
func Prepare(t *config.Training, resolver *arch.Resolver) (*Command, paths.Resolved, error) {
	if err := t.Validate(); err != nil {
		return nil, paths.Resolved{}, err
	}

	rp := paths.Resolve(t.ModelDir, t.PythonLoc, t.Platform())

	if err := staging.Stage(t.DataInfo, rp.StagedLabelPath, t.Platform(), t.Delimiter); err != nil {
		return nil, paths.Resolved{}, err
	}

	depth := resolver.EffectiveDepth(t.Architecture, t.Depth)
	return Build(t, rp, depth), rp, nil
}
