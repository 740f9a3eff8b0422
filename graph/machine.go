// Package graph represents images as graphs labeled with Gabor jets.
//
// A Machine holds a fixed set of node positions. Extracting the jets
// at those positions from a jet image yields a Gabor graph, which can
// be averaged with or scored against other graphs of the same
// topology.
package graph

import (
	"fmt"
	"image"
	"math"

	"github.com/jvlmdr/go-cv/rimg64"
	"github.com/jvlmdr/go-gabor/gwt"
)

// Machine samples a jet image at a fixed set of node positions.
// Immutable after construction.
type Machine struct {
	nodes []image.Point
}

// New creates a machine with the given node positions.
// Positions are validated against the image bounds at extraction time.
func New(nodes []image.Point) *Machine {
	m := &Machine{nodes: make([]image.Point, len(nodes))}
	copy(m.nodes, nodes)
	return m
}

// NewGrid creates a regular grid of nodes from first to at most last,
// advancing by step, in row-major (y-major) order.
func NewGrid(first, last, step image.Point) (*Machine, error) {
	if step.X < 1 || step.Y < 1 {
		return nil, fmt.Errorf("non-positive step: %v", step)
	}
	if last.X < first.X || last.Y < first.Y {
		return nil, fmt.Errorf("last %v precedes first %v", last, first)
	}
	xcount := (last.X-first.X)/step.X + 1
	ycount := (last.Y-first.Y)/step.Y + 1
	nodes := make([]image.Point, 0, xcount*ycount)
	for y := 0; y < ycount; y++ {
		for x := 0; x < xcount; x++ {
			nodes = append(nodes, image.Pt(first.X+x*step.X, first.Y+y*step.Y))
		}
	}
	return &Machine{nodes}, nil
}

// NewFaceGrid creates a grid anchored at two eye positions.
// The step between nodes is the eye-to-eye vector divided by
// between+1, so that between nodes lie on the eye axis between the
// eyes, along nodes extend beyond each eye, and above and below rows
// extend perpendicular to the eye axis. The grid rotates with the
// eyes; positions are rounded to integer pixels.
func NewFaceGrid(lefteye, righteye image.Point, between, along, above, below int) (*Machine, error) {
	if between < 0 || along < 0 || above < 0 || below < 0 {
		return nil, fmt.Errorf("negative margin: between %d, along %d, above %d, below %d", between, along, above, below)
	}
	if lefteye == righteye {
		return nil, fmt.Errorf("eye positions coincide: %v", lefteye)
	}
	stepX := float64(lefteye.X-righteye.X) / float64(between+1)
	stepY := float64(lefteye.Y-righteye.Y) / float64(between+1)
	xstart := float64(righteye.X) - float64(along)*stepX + float64(above)*stepY
	ystart := float64(righteye.Y) - float64(along)*stepY - float64(above)*stepX
	xcount := between + 2*(along+1)
	ycount := above + below + 1

	nodes := make([]image.Point, 0, xcount*ycount)
	for y := 0; y < ycount; y++ {
		for x := 0; x < xcount; x++ {
			px := math.Round(xstart + float64(x)*stepX - float64(y)*stepY)
			py := math.Round(ystart + float64(x)*stepY + float64(y)*stepX)
			nodes = append(nodes, image.Pt(int(px), int(py)))
		}
	}
	return &Machine{nodes}, nil
}

// NumNodes returns the number of nodes.
func (m *Machine) NumNodes() int { return len(m.nodes) }

// Nodes returns a copy of the node positions.
func (m *Machine) Nodes() []image.Point {
	nodes := make([]image.Point, len(m.nodes))
	copy(nodes, m.nodes)
	return nodes
}

// Equal reports whether two machines have identical node positions.
func (m *Machine) Equal(other *Machine) bool {
	if len(m.nodes) != len(other.nodes) {
		return false
	}
	for i := range m.nodes {
		if m.nodes[i] != other.nodes[i] {
			return false
		}
	}
	return true
}

// checkPositions fails if any node lies outside a width x height image.
func (m *Machine) checkPositions(width, height int) error {
	for _, p := range m.nodes {
		if p.X < 0 || p.X >= width || p.Y < 0 || p.Y >= height {
			return fmt.Errorf("node position (%d, %d) outside image bounds %dx%d", p.X, p.Y, width, height)
		}
	}
	return nil
}

// Extract copies the jet at every node position from the jet image.
// Fails without writing if any node is out of bounds.
func (m *Machine) Extract(ji *gwt.JetImage) ([]*gwt.Jet, error) {
	if err := m.checkPositions(ji.Width(), ji.Height()); err != nil {
		return nil, err
	}
	jets := make([]*gwt.Jet, len(m.nodes))
	for i, p := range m.nodes {
		jets[i] = ji.At(p.X, p.Y)
	}
	return jets, nil
}

// ExtractAbs copies the magnitude jet at every node position from an
// absolute-value jet image (one channel per kernel).
func (m *Machine) ExtractAbs(ji *rimg64.Multi) ([][]float64, error) {
	if err := m.checkPositions(ji.Width, ji.Height); err != nil {
		return nil, err
	}
	jets := make([][]float64, len(m.nodes))
	for i, p := range m.nodes {
		jets[i] = gwt.AbsJetAt(ji, p.X, p.Y)
	}
	return jets, nil
}
