package main

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/tanview/pkg/mesh"
	"github.com/Faultbox/tanview/pkg/tangent"
)

// Document is the YAML written by `tangentgen gen`.
type Document struct {
	Source     string         `yaml:"source"`
	Mode       string         `yaml:"mode"`
	Degenerate string         `yaml:"degenerate"`
	Meshes     []MeshTangents `yaml:"meshes"`
}

// MeshTangents holds one mesh's tangents and their quality report.
type MeshTangents struct {
	Name      string         `yaml:"name"`
	Triangles int            `yaml:"triangles"`
	Report    tangent.Report `yaml:"report"`
	Tangents  []Vec3         `yaml:"tangents,omitempty"`
}

// Vec3 marshals as a flow sequence so each tangent takes one line.
type Vec3 struct {
	X, Y, Z float32
}

// MarshalYAML implements yaml.Marshaler.
func (v Vec3) MarshalYAML() (interface{}, error) {
	n := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, c := range []float32{v.X, v.Y, v.Z} {
		n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: formatFloat(c)})
	}
	return n, nil
}

func formatFloat(f float32) string {
	switch v := float64(f); {
	case math.IsNaN(v):
		return ".nan"
	case math.IsInf(v, 1):
		return ".inf"
	case math.IsInf(v, -1):
		return "-.inf"
	}
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}

// generate runs the tangent generator over every mesh.
// With withTangents false only the reports are kept.
func generate(source string, meshes []*mesh.Mesh, opts tangent.Options, withTangents bool) (*Document, error) {
	doc := &Document{
		Source:     source,
		Mode:       opts.Mode.String(),
		Degenerate: opts.Degenerate.String(),
	}
	for _, m := range meshes {
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("mesh %q: %w", m.Name, err)
		}
		if !m.HasNormals() {
			m.ComputeNormals()
		}
		tangents, err := tangent.GenerateWith(m, opts)
		if err != nil {
			return nil, fmt.Errorf("mesh %q: %w", m.Name, err)
		}
		mt := MeshTangents{
			Name:      m.Name,
			Triangles: m.TriangleCount(),
			Report:    tangent.Inspect(m.Normals, tangents, tangent.DefaultTolerance),
		}
		if withTangents {
			mt.Tangents = make([]Vec3, len(tangents)/3)
			for i := range mt.Tangents {
				mt.Tangents[i] = Vec3{tangents[i*3], tangents[i*3+1], tangents[i*3+2]}
			}
		}
		doc.Meshes = append(doc.Meshes, mt)
	}
	return doc, nil
}

// OK reports whether every mesh's tangents passed inspection.
func (d *Document) OK() bool {
	for _, m := range d.Meshes {
		if !m.Report.OK() {
			return false
		}
	}
	return true
}

func (d *Document) write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return err
	}
	return enc.Close()
}
