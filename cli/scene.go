package cli

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"go.viam.com/collidedeform/deform"
)

// MeshData is the JSON form of a mesh buffer.
type MeshData struct {
	Positions [][3]float64 `json:"positions"`
	Normals   [][3]float64 `json:"normals,omitempty"`
	Faces     [][3]int     `json:"faces,omitempty"`
}

// Scene is a base mesh and the collision mesh it is pushed out of.
type Scene struct {
	Base      *MeshData `json:"base,omitempty"`
	Collision *MeshData `json:"collision,omitempty"`
}

func toVector(p [3]float64, _ int) r3.Vector {
	return r3.Vector{X: p[0], Y: p[1], Z: p[2]}
}

func fromVector(v r3.Vector, _ int) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// Mesh converts the buffer into a deform.Mesh. A nil buffer is a nil mesh.
func (d *MeshData) Mesh() *deform.Mesh {
	if d == nil {
		return nil
	}
	m := &deform.Mesh{
		Positions: lo.Map(d.Positions, toVector),
		Faces:     append([][3]int(nil), d.Faces...),
	}
	if len(d.Normals) > 0 {
		m.Normals = lo.Map(d.Normals, toVector)
	}
	return m
}

// NewMeshData converts a deform.Mesh into its JSON form.
func NewMeshData(m *deform.Mesh) *MeshData {
	if m == nil {
		return nil
	}
	d := &MeshData{
		Positions: lo.Map(m.Positions, fromVector),
		Faces:     append([][3]int(nil), m.Faces...),
	}
	if len(m.Normals) > 0 {
		d.Normals = lo.Map(m.Normals, fromVector)
	}
	return d
}

// DecodeScene reads a scene from r.
func DecodeScene(r io.Reader) (*Scene, error) {
	var scene Scene
	if err := json.NewDecoder(r).Decode(&scene); err != nil {
		return nil, errors.Wrap(err, "decoding scene")
	}
	return &scene, nil
}

// EncodeScene writes a scene to w.
func EncodeScene(w io.Writer, scene *Scene) error {
	return errors.Wrap(json.NewEncoder(w).Encode(scene), "encoding scene")
}

func readSceneFile(path string) (*Scene, error) {
	//nolint:gosec
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening scene %s", path)
	}
	defer func() {
		_ = f.Close()
	}()
	return DecodeScene(f)
}

// writeScene writes to path, or to w when path is empty. The file is written next to path and renamed into place,
// so readers never see a partial scene.
func writeScene(w io.Writer, path string, scene *Scene) (err error) {
	if path == "" {
		return EncodeScene(w, scene)
	}
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrapf(err, "creating temporary file for %s", path)
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()
	if err := EncodeScene(f, scene); err != nil {
		return err
	}
	if err := f.Chmod(0o644); err != nil {
		return errors.Wrapf(err, "setting permissions of %s", path)
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "closing %s", f.Name())
	}
	return errors.Wrapf(os.Rename(f.Name(), path), "replacing %s", path)
}
