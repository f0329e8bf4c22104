// Package config loads and validates the settings of a deformation run.
package config

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"

	"go.viam.com/collidedeform/deform"
	"go.viam.com/collidedeform/follow"
	"go.viam.com/collidedeform/logging"
	"go.viam.com/collidedeform/ramp"
	"go.viam.com/collidedeform/spatialmath"
)

// Normal mode names accepted in configuration.
const (
	NormalModeSmooth = "smooth"
	NormalModeFace   = "face"
)

// Config holds every setting of a run.
type Config struct {
	Deform   DeformConfig          `yaml:"deform"`
	Curve    []ramp.ControlPoint   `yaml:"curve"`
	Parallel deform.ParallelPolicy `yaml:"parallel"`
	Follow   FollowConfig          `yaml:"follow"`
	Logging  LoggingConfig         `yaml:"logging"`
}

// DeformConfig holds the evaluation parameters.
type DeformConfig struct {
	Displacement  [3]float64 `yaml:"displacement"`
	SwellLength   float64    `yaml:"swell_length"`
	SwellStrength float64    `yaml:"swell_strength"`
	NormalMode    string     `yaml:"normal_mode"`
}

// FollowConfig holds the gains of the displacement follower and the position it chases.
type FollowConfig struct {
	Follow  float64    `yaml:"follow"`
	Restore float64    `yaml:"restore"`
	Target  [3]float64 `yaml:"target"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string             `yaml:"level"`
	File  logging.FileConfig `yaml:"file"`
}

// Default returns a Config with the deformer's default values.
func Default() *Config {
	return &Config{
		Deform: DeformConfig{
			SwellLength:   deform.DefaultSwellLength,
			SwellStrength: deform.DefaultSwellStrength,
			NormalMode:    NormalModeSmooth,
		},
		Curve:    ramp.DefaultControlPoints(),
		Parallel: deform.DefaultParallelPolicy(),
		Follow: FollowConfig{
			Follow:  follow.DefaultFollow,
			Restore: follow.DefaultRestore,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate returns every problem with the configuration combined into one error.
func (c *Config) Validate() error {
	var err error
	if !(c.Deform.SwellLength > 0) {
		err = multierr.Append(err, errors.Errorf("deform.swell_length must be positive, got %v", c.Deform.SwellLength))
	}
	if _, modeErr := c.NormalMode(); modeErr != nil {
		err = multierr.Append(err, modeErr)
	}
	if _, curveErr := c.BuildCurve(); curveErr != nil {
		err = multierr.Append(err, errors.Wrap(curveErr, "curve"))
	}
	if c.Parallel.Threshold < 0 {
		err = multierr.Append(err, errors.Errorf("parallel.threshold must not be negative, got %d", c.Parallel.Threshold))
	}
	if c.Parallel.Workers < 0 {
		err = multierr.Append(err, errors.Errorf("parallel.workers must not be negative, got %d", c.Parallel.Workers))
	}
	if c.Follow.Follow < 0 || c.Follow.Restore < 0 {
		err = multierr.Append(err, errors.New("follow gains must not be negative"))
	}
	if _, levelErr := logging.ParseLevel(c.Logging.Level); levelErr != nil {
		err = multierr.Append(err, errors.Wrap(levelErr, "logging.level"))
	}
	return err
}

// Params returns the evaluation parameters.
func (c *Config) Params() deform.Params {
	d := c.Deform.Displacement
	return deform.Params{
		Displacement:  r3.Vector{X: d[0], Y: d[1], Z: d[2]},
		SwellLength:   c.Deform.SwellLength,
		SwellStrength: c.Deform.SwellStrength,
	}
}

// BuildCurve returns the configured response curve.
func (c *Config) BuildCurve() (*ramp.Curve, error) {
	return ramp.New(c.Curve...)
}

// NormalMode returns the configured collision surface normal mode. An empty mode is smooth.
func (c *Config) NormalMode() (spatialmath.NormalMode, error) {
	switch c.Deform.NormalMode {
	case "", NormalModeSmooth:
		return spatialmath.SmoothNormals, nil
	case NormalModeFace:
		return spatialmath.FaceNormals, nil
	default:
		return 0, errors.Errorf("deform.normal_mode must be %q or %q, got %q", NormalModeSmooth, NormalModeFace, c.Deform.NormalMode)
	}
}

// Follower returns a displacement follower with the configured gains.
func (c *Config) Follower() *follow.Follower {
	f := follow.NewFollower()
	f.Follow = c.Follow.Follow
	f.Restore = c.Follow.Restore
	return f
}

// FollowTarget returns the position the follower chases.
func (c *Config) FollowTarget() r3.Vector {
	t := c.Follow.Target
	return r3.Vector{X: t[0], Y: t[1], Z: t[2]}
}

// NewLogger returns a logger at the configured level writing to out, and also to the configured file if any.
func (c *Config) NewLogger(name string, out zapcore.WriteSyncer) (logging.Logger, error) {
	level, err := logging.ParseLevel(c.Logging.Level)
	if err != nil {
		return nil, err
	}
	return logging.NewWriterLogger(name, level, out, c.Logging.File), nil
}

// NewEvaluator returns an evaluator using the configured parallel policy and normal mode.
func (c *Config) NewEvaluator(logger logging.Logger) (*deform.Evaluator, error) {
	mode, err := c.NormalMode()
	if err != nil {
		return nil, err
	}
	return deform.NewEvaluator(logger, deform.WithParallelPolicy(c.Parallel), deform.WithNormalMode(mode)), nil
}
