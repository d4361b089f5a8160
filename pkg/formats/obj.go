package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Faultbox/tanview/pkg/mesh"
)

// OBJ format errors.
var (
	ErrEmptyOBJ           = errors.New("OBJ has no faces")
	ErrInvalidOBJFace     = errors.New("invalid OBJ face")
	ErrInvalidOBJNumber   = errors.New("invalid OBJ number")
	ErrOBJIndexOutOfRange = errors.New("OBJ index out of range")
)

// objVertexKey identifies one v/vt/vn combination. Missing references are -1.
type objVertexKey struct {
	pos, uv, normal int
}

type objParser struct {
	positions [][3]float32
	uvs       [][2]float32
	normals   [][3]float32

	out    *mesh.Mesh
	unique map[objVertexKey]uint32
}

// ParseOBJ parses a Wavefront OBJ file into an index-aligned mesh.
//
// Every distinct v/vt/vn triple in the face records becomes one output vertex,
// so positions, normals and texture coordinates share a single index buffer.
// Polygons with more than three corners are triangulated as fans. Texture
// coordinates and normals are only emitted when the file declares them;
// corners that omit them get zeros.
func ParseOBJ(data []byte) (*mesh.Mesh, error) {
	p := &objParser{
		out:    &mesh.Mesh{},
		unique: make(map[objVertexKey]uint32),
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		fields := strings.Fields(line)
		if err := p.parseLine(fields); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading OBJ: %w", err)
	}

	if len(p.out.Indices) == 0 {
		return nil, ErrEmptyOBJ
	}
	if len(p.uvs) == 0 {
		p.out.UVs = nil
	}
	if len(p.normals) == 0 {
		p.out.Normals = nil
	}
	return p.out, nil
}

func (p *objParser) parseLine(fields []string) error {
	switch fields[0] {
	case "v":
		v, err := parseFloats(fields[1:], 3)
		if err != nil {
			return err
		}
		p.positions = append(p.positions, [3]float32{v[0], v[1], v[2]})
	case "vt":
		// v is optional and defaults to 0.
		v, err := parseFloats(fields[1:], 1)
		if err != nil {
			return err
		}
		uv := [2]float32{v[0], 0}
		if len(fields) > 2 {
			w, err := parseFloats(fields[2:], 1)
			if err != nil {
				return err
			}
			uv[1] = w[0]
		}
		p.uvs = append(p.uvs, uv)
	case "vn":
		v, err := parseFloats(fields[1:], 3)
		if err != nil {
			return err
		}
		p.normals = append(p.normals, [3]float32{v[0], v[1], v[2]})
	case "o":
		if p.out.Name == "" && len(fields) > 1 {
			p.out.Name = strings.Join(fields[1:], " ")
		}
	case "f":
		return p.parseFace(fields[1:])
	}
	// g, s, usemtl, mtllib and unknown records are ignored.
	return nil
}

func (p *objParser) parseFace(corners []string) error {
	if len(corners) < 3 {
		return fmt.Errorf("%w: %d corners", ErrInvalidOBJFace, len(corners))
	}

	idx := make([]uint32, len(corners))
	for i, c := range corners {
		key, err := p.parseCorner(c)
		if err != nil {
			return err
		}
		idx[i] = p.vertex(key)
	}

	for i := 1; i+1 < len(idx); i++ {
		p.out.Indices = append(p.out.Indices, idx[0], idx[i], idx[i+1])
	}
	return nil
}

// parseCorner parses "v", "v/vt", "v//vn" or "v/vt/vn".
func (p *objParser) parseCorner(s string) (objVertexKey, error) {
	key := objVertexKey{pos: -1, uv: -1, normal: -1}
	parts := strings.Split(s, "/")
	if len(parts) > 3 || parts[0] == "" {
		return key, fmt.Errorf("%w: %q", ErrInvalidOBJFace, s)
	}

	var err error
	if key.pos, err = resolveIndex(parts[0], len(p.positions)); err != nil {
		return key, err
	}
	if len(parts) > 1 && parts[1] != "" {
		if key.uv, err = resolveIndex(parts[1], len(p.uvs)); err != nil {
			return key, err
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if key.normal, err = resolveIndex(parts[2], len(p.normals)); err != nil {
			return key, err
		}
	}
	return key, nil
}

// vertex returns the output index for key, appending a new vertex on first use.
func (p *objParser) vertex(key objVertexKey) uint32 {
	if i, ok := p.unique[key]; ok {
		return i
	}

	i := uint32(len(p.out.Positions) / 3)
	pos := p.positions[key.pos]
	p.out.Positions = append(p.out.Positions, pos[0], pos[1], pos[2])

	var uv [2]float32
	if key.uv >= 0 {
		uv = p.uvs[key.uv]
	}
	p.out.UVs = append(p.out.UVs, uv[0], uv[1])

	var n [3]float32
	if key.normal >= 0 {
		n = p.normals[key.normal]
	}
	p.out.Normals = append(p.out.Normals, n[0], n[1], n[2])

	p.unique[key] = i
	return i
}

// resolveIndex converts a 1-based or negative (relative) OBJ index to 0-based.
func resolveIndex(s string, count int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidOBJNumber, s)
	}
	i := n - 1
	if n < 0 {
		i = count + n
	}
	if n == 0 || i < 0 || i >= count {
		return 0, fmt.Errorf("%w: %d of %d", ErrOBJIndexOutOfRange, n, count)
	}
	return i, nil
}

func parseFloats(fields []string, want int) ([]float32, error) {
	if len(fields) < want {
		return nil, fmt.Errorf("%w: expected %d values, got %d", ErrInvalidOBJNumber, want, len(fields))
	}
	out := make([]float32, want)
	for i := 0; i < want; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidOBJNumber, fields[i])
		}
		out[i] = float32(f)
	}
	return out, nil
}
