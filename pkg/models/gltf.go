package models

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/taigrr/tinyrender/pkg/math3d"
)

// LoadGLTF loads a .gltf or .glb file. Every triangle primitive of every
// mesh is merged into one Mesh. The base color and normal textures of the
// first textured material are attached when present.
func LoadGLTF(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh := NewMesh(filepath.Base(path))
	dir := filepath.Dir(path)

	for _, m := range doc.Meshes {
		for _, prim := range m.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles {
				continue
			}
			if err := appendPrimitive(doc, prim, mesh); err != nil {
				return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
			}
			if prim.Material != nil && mesh.DiffuseMap == nil {
				mat := doc.Materials[*prim.Material]
				if pbr := mat.PBRMetallicRoughness; pbr != nil && pbr.BaseColorTexture != nil {
					mesh.DiffuseMap = readTexture(doc, dir, pbr.BaseColorTexture.Index)
				}
			}
		}
	}
	if len(mesh.Faces) == 0 {
		return nil, fmt.Errorf("gltf %s: no triangle primitives", filepath.Base(path))
	}

	mesh.finish()
	return mesh, nil
}

// appendPrimitive copies one primitive's vertices and faces into mesh.
func appendPrimitive(doc *gltf.Document, prim *gltf.Primitive, mesh *Mesh) error {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return fmt.Errorf("read positions: %w", err)
	}

	var normals [][3]float32
	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		normals, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil)
		if err != nil {
			return fmt.Errorf("read normals: %w", err)
		}
	}

	var uvs [][2]float32
	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil)
		if err != nil {
			return fmt.Errorf("read uvs: %w", err)
		}
	}

	base := len(mesh.Vertices)
	for i, p := range positions {
		v := Vertex{Position: math3d.V3(float64(p[0]), float64(p[1]), float64(p[2]))}
		if i < len(normals) {
			n := normals[i]
			v.Normal = math3d.V3(float64(n[0]), float64(n[1]), float64(n[2]))
		}
		if i < len(uvs) {
			// glTF puts t=0 at the top of the image, textures here start at the bottom.
			v.UV = math3d.V2(float64(uvs[i][0]), 1-float64(uvs[i][1]))
		}
		mesh.Vertices = append(mesh.Vertices, v)
	}

	var indices []uint32
	if prim.Indices != nil {
		indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return fmt.Errorf("read indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	for i := 0; i+2 < len(indices); i += 3 {
		f := Face{V: [3]int{base + int(indices[i]), base + int(indices[i+1]), base + int(indices[i+2])}}
		for _, vi := range f.V {
			if vi >= len(mesh.Vertices) {
				return fmt.Errorf("index %d out of range", vi-base)
			}
		}
		mesh.Faces = append(mesh.Faces, f)
	}
	return nil
}

// readTexture decodes texture idx from a buffer view or a file next to the
// document. Undecodable textures are skipped.
func readTexture(doc *gltf.Document, dir string, idx int) image.Image {
	if idx >= len(doc.Textures) || doc.Textures[idx].Source == nil {
		return nil
	}
	img := doc.Images[*doc.Textures[idx].Source]

	var data []byte
	switch {
	case img.BufferView != nil:
		raw, err := modeler.ReadBufferView(doc, doc.BufferViews[*img.BufferView])
		if err != nil {
			return nil
		}
		data = raw
	case img.URI != "" && !img.IsEmbeddedResource():
		raw, err := os.ReadFile(filepath.Join(dir, img.URI))
		if err != nil {
			return nil
		}
		data = raw
	default:
		return nil
	}

	decoded, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil
	}
	return decoded
}
