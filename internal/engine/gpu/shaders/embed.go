// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// TerrainVertexShader is the vertex shader for the packed terrain.
//
//go:embed terrain.vert
var TerrainVertexShader string

// TerrainFragmentShader samples the terrain texture arrays and applies the
// sun and point lights.
//
//go:embed terrain.frag
var TerrainFragmentShader string

// ScreenVertexShader is the vertex shader for pre-projected billboards and
// the sky polygon.
//
//go:embed screen.vert
var ScreenVertexShader string

// ScreenFragmentShader is the fragment shader for screen-space polygons.
//
//go:embed screen.frag
var ScreenFragmentShader string
