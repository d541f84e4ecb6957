package scene

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"pbr-engine/core"
	"pbr-engine/internal/logger"
)

// ObjectData is the serialized form of one SceneObject. Mesh geometry is
// not stored; MeshName is a hint used to re-bind a mesh on load. Textures
// are likewise left to the caller.
type ObjectData struct {
	Name     string     `json:"name"`
	Position mgl32.Vec3 `json:"position"`
	Rotation mgl32.Vec3 `json:"rotation"`
	Scale    mgl32.Vec3 `json:"scale"`

	Color     core.Color `json:"color"`
	Roughness float32    `json:"roughness"`
	Metallic  float32    `json:"metallic"`

	InstanceCount int    `json:"instanceCount,omitempty"`
	Active        bool   `json:"active"`
	MeshName      string `json:"meshName"`
}

// SceneData is a loadable snapshot of a scene's objects.
type SceneData struct {
	Version int          `json:"version"`
	Objects []ObjectData `json:"objects"`
}

// SaveScene writes the scene's object state to a JSON file. Geometry and
// textures stay out of the file; each object records its mesh name so
// Apply can re-bind it.
func SaveScene(s *Scene, path string) error {
	sd := SceneData{Version: 1}
	for _, obj := range s.Objects() {
		od := ObjectData{
			Name:          obj.Name,
			Position:      obj.Transform.Position,
			Rotation:      obj.Transform.Rotation,
			Scale:         obj.Transform.Scale,
			Color:         obj.Color,
			Roughness:     obj.Roughness,
			Metallic:      obj.Metallic,
			InstanceCount: obj.InstanceCount,
			Active:        obj.Active,
		}
		if obj.Mesh != nil {
			od.MeshName = obj.Mesh.Name
		}
		sd.Objects = append(sd.Objects, od)
	}

	data, err := json.MarshalIndent(sd, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal scene: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write scene %q: %w", path, err)
	}
	logger.Log.Info("scene saved", zap.String("path", path), zap.Int("objects", len(sd.Objects)))
	return nil
}

// LoadScene reads a file written by SaveScene. Apply the result to a scene
// with a mesh lookup to make it live.
func LoadScene(path string) (*SceneData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene %q: %w", path, err)
	}
	var sd SceneData
	if err := json.Unmarshal(data, &sd); err != nil {
		return nil, fmt.Errorf("unmarshal scene %q: %w", path, err)
	}
	return &sd, nil
}

// Apply replaces the scene's objects with the snapshot, resolving each
// MeshName through the lookup. Entries whose mesh is unknown are skipped
// with a warning rather than failing the whole load. Emitters are left
// untouched. Returns the number of objects restored.
func (sd *SceneData) Apply(s *Scene, meshes map[string]*Mesh) int {
	s.objects = s.objects[:0]

	for _, od := range sd.Objects {
		mesh, ok := meshes[od.MeshName]
		if !ok {
			logger.Log.Warn("scene load: no mesh for object",
				zap.String("object", od.Name), zap.String("mesh", od.MeshName))
			continue
		}

		obj := NewSceneObject(od.Name, mesh)
		obj.Transform.Position = od.Position
		obj.Transform.Rotation = od.Rotation
		obj.Transform.Scale = od.Scale
		obj.Color = od.Color
		obj.Roughness = od.Roughness
		obj.Metallic = od.Metallic
		obj.InstanceCount = od.InstanceCount
		obj.Active = od.Active
		s.Add(obj)
	}
	return len(s.objects)
}
