// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// NormalMapVertexShader transforms vertices and builds the tangent frame.
//
//go:embed normalmap.vert
var NormalMapVertexShader string

// NormalMapFragmentShader shades with an albedo map and a tangent-space normal map.
//
//go:embed normalmap.frag
var NormalMapFragmentShader string

// FlatVertexShader is used for meshes without texture coordinates.
//
//go:embed flat.vert
var FlatVertexShader string

// FlatFragmentShader applies Lambert lighting with a constant color.
//
//go:embed flat.frag
var FlatFragmentShader string
