package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.viam.com/collidedeform/deform"
)

func TestMeshData(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		var d *MeshData
		test.That(t, d.Mesh(), test.ShouldBeNil)
		test.That(t, NewMeshData(nil), test.ShouldBeNil)
	})

	t.Run("without normals", func(t *testing.T) {
		d := &MeshData{
			Positions: [][3]float64{{0, 0, 0}, {1, 0, 0}, {0, 0, 1}},
			Faces:     [][3]int{{0, 2, 1}},
		}
		m := d.Mesh()
		test.That(t, m.Positions, test.ShouldResemble, []r3.Vector{{}, {X: 1}, {Z: 1}})
		test.That(t, m.Normals, test.ShouldBeNil)
		test.That(t, m.Faces, test.ShouldResemble, [][3]int{{0, 2, 1}})
	})

	t.Run("back and forth", func(t *testing.T) {
		plane := deform.NewPlane(0.25, 1, 2)
		m := NewMeshData(plane).Mesh()
		test.That(t, m, test.ShouldResemble, plane)
	})
}

func TestDecodeScene(t *testing.T) {
	scene, err := DecodeScene(strings.NewReader(`{
		"base": {"positions": [[0, 0.2, 0]], "normals": [[0, 1, 0]]},
		"collision": {"positions": [[-1, 0, -1], [1, 0, -1], [0, 0, 1]], "faces": [[0, 2, 1]]}
	}`))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, scene.Base.Mesh().Positions, test.ShouldResemble, []r3.Vector{{Y: 0.2}})
	test.That(t, scene.Base.Mesh().Normals, test.ShouldResemble, []r3.Vector{{Y: 1}})
	test.That(t, scene.Collision.Faces, test.ShouldHaveLength, 1)

	scene, err = DecodeScene(strings.NewReader(`{"base": {"positions": [[0, 0, 0]]}}`))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, scene.Collision, test.ShouldBeNil)

	_, err = DecodeScene(strings.NewReader(`{"base": `))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "decoding scene")
}

func TestEncodeScene(t *testing.T) {
	scene := &Scene{Base: NewMeshData(deform.NewPlane(0, 1, 1))}
	var buf bytes.Buffer
	test.That(t, EncodeScene(&buf, scene), test.ShouldBeNil)
	test.That(t, buf.String(), test.ShouldNotContainSubstring, "collision")

	decoded, err := DecodeScene(&buf)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, decoded, test.ShouldResemble, scene)
}

func TestWriteSceneReplacesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")

	test.That(t, writeScene(nil, path, &Scene{Base: NewMeshData(deform.NewPlane(0, 1, 1))}), test.ShouldBeNil)
	second := &Scene{Base: NewMeshData(deform.NewPlane(2, 1, 2))}
	test.That(t, writeScene(nil, path, second), test.ShouldBeNil)

	got, err := readSceneFile(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, got, test.ShouldResemble, second)

	// no temporary files are left next to the output
	entries, err := os.ReadDir(dir)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, entries, test.ShouldHaveLength, 1)
	test.That(t, entries[0].Name(), test.ShouldEqual, "out.json")

	err = writeScene(nil, filepath.Join(dir, "missing", "out.json"), second)
	test.That(t, err, test.ShouldNotBeNil)
}
