package cli

import (
	"os"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap/zapcore"

	"go.viam.com/collidedeform/config"
	"go.viam.com/collidedeform/deform"
	"go.viam.com/collidedeform/logging"
)

const (
	demoSphereRadius = 1.0
	demoSphereStacks = 16
	demoSphereSlices = 24

	statsCurveSamples = 5
)

// runContext holds the configuration and logger shared by every command.
type runContext struct {
	cfg    *config.Config
	logger logging.Logger
}

func newRunContext(c *cli.Context) (*runContext, error) {
	cfg, err := config.Load(c.Path(generalFlagConfig))
	if err != nil {
		return nil, err
	}
	if c.Bool(generalFlagDebug) {
		cfg.Logging.Level = "debug"
	}
	errOut := c.App.ErrWriter
	if errOut == nil {
		errOut = os.Stderr
	}
	// stdout carries scenes and reports only
	logger, err := cfg.NewLogger("collidedeform", zapcore.AddSync(errOut))
	if err != nil {
		return nil, err
	}
	return &runContext{cfg: cfg, logger: logger}, nil
}

func (rc *runContext) evaluate(base, collision *deform.Mesh, params deform.Params) (*deform.Mesh, []deform.Outcome, error) {
	curve, err := rc.cfg.BuildCurve()
	if err != nil {
		return nil, nil, err
	}
	evaluator, err := rc.cfg.NewEvaluator(rc.logger.Sublogger("deform"))
	if err != nil {
		return nil, nil, err
	}
	out, outcomes, ok := evaluator.EvaluateWithOutcomes(base, collision, params, curve)
	if !ok {
		return nil, nil, deform.ErrMissingInput
	}
	return out, outcomes, nil
}

// EvalAction deforms the base mesh of a scene file and writes the result.
func EvalAction(c *cli.Context) error {
	rc, err := newRunContext(c)
	if err != nil {
		return err
	}
	scene, err := readSceneFile(c.Path(sceneFlagScene))
	if err != nil {
		return err
	}
	out, _, err := rc.evaluate(scene.Base.Mesh(), scene.Collision.Mesh(), rc.cfg.Params())
	if err != nil {
		return err
	}
	return writeScene(c.App.Writer, c.Path(sceneFlagOut), &Scene{Base: NewMeshData(out), Collision: scene.Collision})
}

// DemoAction deforms a grid plane against a sphere, optionally driving the displacement with the follower first.
func DemoAction(c *cli.Context) error {
	resolution := c.Int(demoFlagResolution)
	if resolution < 1 {
		return errors.Errorf("--%s must be at least 1, got %d", demoFlagResolution, resolution)
	}
	frames := c.Int(demoFlagFrames)
	if frames < 1 {
		return errors.Errorf("--%s must be at least 1, got %d", demoFlagFrames, frames)
	}
	rc, err := newRunContext(c)
	if err != nil {
		return err
	}

	base := deform.NewPlane(0, 1, resolution)
	collision := deform.NewSphere(r3.Vector{Y: c.Float64(demoFlagSphereLevel)}, demoSphereRadius, demoSphereStacks, demoSphereSlices)

	follower := rc.cfg.Follower()
	target := rc.cfg.FollowTarget()
	var offset r3.Vector
	for frame := 1; frame <= frames; frame++ {
		offset = follower.Step(float64(frame), target)
	}
	params := rc.cfg.Params()
	params.Displacement = params.Displacement.Add(offset)

	out, outcomes, err := rc.evaluate(base, collision, params)
	if err != nil {
		return err
	}
	summary, err := Summarize(base, out, params.Displacement, outcomes)
	if err != nil {
		return err
	}
	rc.logger.Debugw("demo evaluated",
		"resolution", resolution,
		"frames", frames,
		"displacement", params.Displacement,
		"snapped", summary.Counts[deform.Snapped],
		"swelled", summary.Counts[deform.Swelled],
	)
	return writeScene(c.App.Writer, c.Path(sceneFlagOut), &Scene{Base: NewMeshData(out), Collision: NewMeshData(collision)})
}

// StatsAction evaluates a scene file and prints how far vertices moved and how each was resolved.
func StatsAction(c *cli.Context) error {
	rc, err := newRunContext(c)
	if err != nil {
		return err
	}
	scene, err := readSceneFile(c.Path(sceneFlagScene))
	if err != nil {
		return err
	}
	base := scene.Base.Mesh()
	params := rc.cfg.Params()
	out, outcomes, err := rc.evaluate(base, scene.Collision.Mesh(), params)
	if err != nil {
		return err
	}
	summary, err := Summarize(base, out, params.Displacement, outcomes)
	if err != nil {
		return err
	}
	curve, err := rc.cfg.BuildCurve()
	if err != nil {
		return err
	}
	summary.CurveSamples = curve.Sample(statsCurveSamples)
	summary.Print(c.App.Writer)
	return nil
}
