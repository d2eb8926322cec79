package models

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taigrr/tinyrender/pkg/math3d"
)

// ErrMalformedOBJ is wrapped by every OBJ parse failure.
var ErrMalformedOBJ = errors.New("malformed obj")

// LoadOBJ loads a Wavefront OBJ file.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	mesh, err := ParseOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	mesh.Name = filepath.Base(path)
	return mesh, nil
}

// objKey identifies a unique position/uv/normal combination.
type objKey struct{ v, vt, vn int }

// ParseOBJ reads positions, texture coordinates, normals and faces.
// Polygons are split into triangle fans; other statements are ignored.
func ParseOBJ(r io.Reader) (*Mesh, error) {
	var (
		positions []math3d.Vec3
		uvs       []math3d.Vec2
		normals   []math3d.Vec3
	)
	mesh := NewMesh("")
	seen := make(map[objKey]int)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "v":
			p, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			positions = append(positions, math3d.V3(p[0], p[1], p[2]))
		case "vt":
			p, err := parseFloats(fields[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			uvs = append(uvs, math3d.V2(p[0], p[1]))
		case "vn":
			p, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			normals = append(normals, math3d.V3(p[0], p[1], p[2]))
		case "f":
			corners := fields[1:]
			if len(corners) < 3 {
				return nil, fmt.Errorf("line %d: face with %d vertices: %w", lineNo, len(corners), ErrMalformedOBJ)
			}
			idx := make([]int, len(corners))
			for i, c := range corners {
				key, err := parseCorner(c, len(positions), len(uvs), len(normals))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				vi, ok := seen[key]
				if !ok {
					v := Vertex{Position: positions[key.v]}
					if key.vt >= 0 {
						v.UV = uvs[key.vt]
					}
					if key.vn >= 0 {
						v.Normal = normals[key.vn]
					}
					vi = len(mesh.Vertices)
					mesh.Vertices = append(mesh.Vertices, v)
					seen[key] = vi
				}
				idx[i] = vi
			}
			for i := 1; i+1 < len(idx); i++ {
				mesh.Faces = append(mesh.Faces, Face{V: [3]int{idx[0], idx[i], idx[i+1]}})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	mesh.finish()
	return mesh, nil
}

func parseFloats(fields []string, n int) ([]float64, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("want %d values, got %d: %w", n, len(fields), ErrMalformedOBJ)
	}
	out := make([]float64, n)
	for i := range n {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedOBJ, err)
		}
		out[i] = f
	}
	return out, nil
}

// parseCorner parses v, v/vt, v//vn or v/vt/vn into zero-based indices.
// Missing attributes are -1.
func parseCorner(s string, nv, nvt, nvn int) (objKey, error) {
	parts := strings.Split(s, "/")
	if len(parts) > 3 {
		return objKey{}, fmt.Errorf("corner %q: %w", s, ErrMalformedOBJ)
	}
	key := objKey{v: -1, vt: -1, vn: -1}
	targets := []*int{&key.v, &key.vt, &key.vn}
	counts := []int{nv, nvt, nvn}
	for i, p := range parts {
		if p == "" {
			if i == 0 {
				return objKey{}, fmt.Errorf("corner %q: missing position: %w", s, ErrMalformedOBJ)
			}
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return objKey{}, fmt.Errorf("corner %q: %w: %w", s, ErrMalformedOBJ, err)
		}
		idx, err := resolveIndex(n, counts[i])
		if err != nil {
			return objKey{}, fmt.Errorf("corner %q: %w", s, err)
		}
		*targets[i] = idx
	}
	return key, nil
}

// resolveIndex turns a one-based or negative relative index into a
// zero-based one.
func resolveIndex(n, count int) (int, error) {
	idx := n - 1
	if n < 0 {
		idx = count + n
	}
	if n == 0 || idx < 0 || idx >= count {
		return 0, fmt.Errorf("index %d out of range [1,%d]: %w", n, count, ErrMalformedOBJ)
	}
	return idx, nil
}
