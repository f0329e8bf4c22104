package deform

import (
	"time"

	"github.com/pkg/errors"

	"go.viam.com/collidedeform/logging"
	"go.viam.com/collidedeform/ramp"
	"go.viam.com/collidedeform/spatialmath"
	"go.viam.com/collidedeform/utils"
)

// ErrMissingInput is returned by callers that require an evaluation to run when a base or collision mesh is absent.
var ErrMissingInput = errors.New("base and collision meshes are both required")

const (
	// DefaultParallelThreshold is the vertex count above which vertices are resolved in parallel.
	DefaultParallelThreshold = 1000
	// DefaultWorkers is the default number of goroutines used for a parallel pass.
	DefaultWorkers = 8
)

// ParallelPolicy decides how a pass is split across goroutines. Results do not depend on it.
type ParallelPolicy struct {
	Threshold int `yaml:"threshold"`
	Workers   int `yaml:"workers"`
}

// DefaultParallelPolicy returns the default threshold with workers capped by both DefaultWorkers and the
// available parallelism.
func DefaultParallelPolicy() ParallelPolicy {
	workers := DefaultWorkers
	if utils.ParallelFactor < workers {
		workers = utils.ParallelFactor
	}
	return ParallelPolicy{Threshold: DefaultParallelThreshold, Workers: workers}
}

func (p ParallelPolicy) workersFor(numVertices int) int {
	if numVertices <= p.Threshold || p.Workers <= 1 {
		return 1
	}
	return p.Workers
}

// Evaluator runs the deformation over whole meshes.
type Evaluator struct {
	logger     logging.Logger
	policy     ParallelPolicy
	normalMode spatialmath.NormalMode
}

// EvaluatorOption configures an Evaluator.
type EvaluatorOption func(*Evaluator)

// WithParallelPolicy sets how vertices are split across goroutines.
func WithParallelPolicy(policy ParallelPolicy) EvaluatorOption {
	return func(e *Evaluator) {
		e.policy = policy
	}
}

// WithNormalMode sets how collision surface normals are derived.
func WithNormalMode(mode spatialmath.NormalMode) EvaluatorOption {
	return func(e *Evaluator) {
		e.normalMode = mode
	}
}

// NewEvaluator returns an Evaluator using the default parallel policy and smooth surface normals.
func NewEvaluator(logger logging.Logger, opts ...EvaluatorOption) *Evaluator {
	e := &Evaluator{
		logger: logger,
		policy: DefaultParallelPolicy(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate deforms base against collision with a quiet default Evaluator.
func Evaluate(base, collision *Mesh, params Params, curve Sampler) (*Mesh, bool) {
	return NewEvaluator(logging.NewBlankLogger("deform")).Evaluate(base, collision, params, curve)
}

// Evaluate returns a copy of base with every vertex resolved against collision. When either mesh is absent or
// empty nothing is computed and ok is false. A nil curve uses ramp.Default.
func (e *Evaluator) Evaluate(base, collision *Mesh, params Params, curve Sampler) (*Mesh, bool) {
	out, _, ok := e.evaluate(base, collision, params, curve, false)
	return out, ok
}

// EvaluateWithOutcomes is like Evaluate but also reports how each vertex was resolved.
func (e *Evaluator) EvaluateWithOutcomes(base, collision *Mesh, params Params, curve Sampler) (*Mesh, []Outcome, bool) {
	return e.evaluate(base, collision, params, curve, true)
}

func (e *Evaluator) evaluate(
	base, collision *Mesh,
	params Params,
	curve Sampler,
	withOutcomes bool,
) (*Mesh, []Outcome, bool) {
	if base.Empty() || collision.Empty() {
		e.logger.Debugw("skipping evaluation, missing input mesh", "base", !base.Empty(), "collision", !collision.Empty())
		return nil, nil, false
	}
	if curve == nil {
		curve = ramp.Default()
	}
	start := time.Now()

	out := base.Clone()
	normals := base.VertexNormals()

	var surface ClosestPointer
	s, err := collision.Surface(spatialmath.WithNormalMode(e.normalMode))
	if err != nil {
		e.logger.Warnw("cannot build collision surface, leaving vertices at displaced positions", "error", err.Error())
	} else {
		surface = s
	}
	resolver := NewResolver(surface, params, curve)

	var outcomes []Outcome
	if withOutcomes {
		outcomes = make([]Outcome, len(out.Positions))
	}
	resolve := func(i int) {
		pos, outcome := resolver.ResolveVertex(base.Positions[i], normals[i])
		out.Positions[i] = pos
		if outcomes != nil {
			outcomes[i] = outcome
		}
	}

	numVertices := len(out.Positions)
	workers := e.policy.workersFor(numVertices)
	if workers == 1 {
		for i := 0; i < numVertices; i++ {
			resolve(i)
		}
	} else {
		utils.GroupWorkParallelN(workers, numVertices, nil,
			func(groupNum, groupSize, from, to int) (utils.MemberWorkFunc, utils.GroupWorkDoneFunc) {
				return func(memberNum, workNum int) {
					resolve(workNum)
				}, nil
			})
	}

	e.logger.Debugw("evaluated", "vertices", numVertices, "workers", workers, "elapsed", time.Since(start))
	return out, outcomes, true
}
