package main

import (
	"github.com/mirstar13/spatialbvh/bvh"
)

// boxEdges are the 12 edges of a unit cube, as index pairs into the 8
// corners returned by corners(). Grounded on the teacher's box-drawing
// loops in bounding_volumes.go, generalized to emit raw line vertices
// instead of drawing immediately.
var boxEdges = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0}, // bottom face
	{4, 5}, {5, 6}, {6, 7}, {7, 4}, // top face
	{0, 4}, {1, 5}, {2, 6}, {3, 7}, // verticals
}

func corners(b bvh.AABB) [8][3]float32 {
	min, max := b.Min, b.Max
	return [8][3]float32{
		{float32(min.X), float32(min.Y), float32(min.Z)},
		{float32(max.X), float32(min.Y), float32(min.Z)},
		{float32(max.X), float32(max.Y), float32(min.Z)},
		{float32(min.X), float32(max.Y), float32(min.Z)},
		{float32(min.X), float32(min.Y), float32(max.Z)},
		{float32(max.X), float32(min.Y), float32(max.Z)},
		{float32(max.X), float32(max.Y), float32(max.Z)},
		{float32(min.X), float32(max.Y), float32(max.Z)},
	}
}

// depthColor fades a node's wireframe color from white (root) towards a
// warm orange as depth increases, so the viewer can read tree shape at a
// glance without a legend.
func depthColor(depth uint32) [3]float32 {
	t := float32(depth) / 12.0
	if t > 1 {
		t = 1
	}
	return [3]float32{1.0, 1.0 - 0.6*t, 1.0 - 0.9*t}
}

// appendBoxLines appends pos(3)+color(3) vertices for every edge of every
// box to vertices, skipping every node deeper than maxDepth so a deep tree
// does not flood the line buffer (the teacher's own lineVertices buffer
// in renderer_opengl.go is a fixed-capacity slice with the same concern).
func appendBoxLines(vertices []float32, boxes []bvh.NodeBox, maxDepth uint32) []float32 {
	for _, nb := range boxes {
		if nb.Depth > maxDepth {
			continue
		}
		c := corners(nb.Bounds)
		color := depthColor(nb.Depth)
		if nb.IsLeaf {
			color = [3]float32{0.2, 1.0, 0.4}
		}
		for _, e := range boxEdges {
			a, b := c[e[0]], c[e[1]]
			vertices = append(vertices,
				a[0], a[1], a[2], color[0], color[1], color[2],
				b[0], b[1], b[2], color[0], color[1], color[2],
			)
		}
	}
	return vertices
}
