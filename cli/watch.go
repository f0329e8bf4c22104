package cli

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/collidedeform/deform"
)

// sceneWatcher re-evaluates a scene file through a deform.Node every time it changes.
type sceneWatcher struct {
	node      *deform.Node
	scenePath string
	outPath   string
	params    deform.Params
	curve     deform.Sampler
}

func newSceneWatcher(rc *runContext, scenePath, outPath string) (*sceneWatcher, error) {
	curve, err := rc.cfg.BuildCurve()
	if err != nil {
		return nil, err
	}
	evaluator, err := rc.cfg.NewEvaluator(rc.logger.Sublogger("deform"))
	if err != nil {
		return nil, err
	}
	w := &sceneWatcher{
		node:      deform.NewNode(deform.NewSchema(), evaluator),
		scenePath: filepath.Clean(scenePath),
		outPath:   outPath,
		params:    rc.cfg.Params(),
		curve:     curve,
	}
	return w, nil
}

// reload reads the scene, recomputes the node and writes its output. A scene missing a mesh leaves the last output
// in place.
func (w *sceneWatcher) reload() error {
	scene, err := readSceneFile(w.scenePath)
	if err != nil {
		return err
	}
	w.node.SetInputs(deform.Inputs{
		Base:      scene.Base.Mesh(),
		Collision: scene.Collision.Mesh(),
		Params:    w.params,
		Curve:     w.curve,
	})
	out, ok := w.node.Compute()
	if !ok {
		return deform.ErrMissingInput
	}
	return writeScene(nil, w.outPath, &Scene{Base: NewMeshData(out), Collision: scene.Collision})
}

// WatchAction evaluates a scene file and evaluates it again each time the file is written, until interrupted.
func WatchAction(c *cli.Context) error {
	rc, err := newRunContext(c)
	if err != nil {
		return err
	}
	w, err := newSceneWatcher(rc, c.Path(sceneFlagScene), c.Path(sceneFlagOut))
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "creating file watcher")
	}
	defer func() {
		if err := watcher.Close(); err != nil {
			rc.logger.Warnw("closing file watcher", "error", err.Error())
		}
	}()
	// editors often replace files rather than write them, so watch the directory
	if err := watcher.Add(filepath.Dir(w.scenePath)); err != nil {
		return errors.Wrapf(err, "watching %s", w.scenePath)
	}

	if err := w.reload(); err != nil {
		rc.logger.Warnw("cannot evaluate scene", "scene", w.scenePath, "error", err.Error())
	}
	rc.logger.Infow("watching scene", "scene", w.scenePath, "out", w.outPath)

	for {
		select {
		case <-c.Context.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.scenePath || !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
				continue
			}
			if err := w.reload(); err != nil {
				rc.logger.Warnw("cannot evaluate scene", "scene", w.scenePath, "error", err.Error())
				continue
			}
			rc.logger.Debugw("scene reevaluated", "scene", w.scenePath)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			rc.logger.Warnw("file watcher error", "error", err.Error())
		}
	}
}
