package graph

import (
	"image"

	"github.com/jvlmdr/go-file/fileutil"
)

type machineFile struct {
	// Node positions as (y, x) pairs.
	NodePositions [][2]int `json:"NodePositions"`
}

// Save writes the node positions. Graph jets are not owned by the
// machine and are not persisted.
func (m *Machine) Save(fname string) error {
	file := machineFile{NodePositions: make([][2]int, len(m.nodes))}
	for i, p := range m.nodes {
		file.NodePositions[i] = [2]int{p.Y, p.X}
	}
	return fileutil.SaveExt(fname, file)
}

// Load reads a machine saved by Save.
func Load(fname string) (*Machine, error) {
	var file machineFile
	if err := fileutil.LoadExt(fname, &file); err != nil {
		return nil, err
	}
	nodes := make([]image.Point, len(file.NodePositions))
	for i, p := range file.NodePositions {
		nodes[i] = image.Pt(p[1], p[0])
	}
	return &Machine{nodes}, nil
}
