package jetsim

import (
	"github.com/jvlmdr/go-file/fileutil"
	"github.com/jvlmdr/go-gabor/gwt"
)

type measureFile struct {
	Type string `json:"Type"`
	// Present for phase-based measures only.
	Transform *gwt.Params `json:"GaborWaveletTransform,omitempty"`
}

// Save writes the measure type and, for phase-based measures, the
// parameters of the owning transform.
func (m *Measure) Save(fname string) error {
	file := measureFile{Type: m.typ.String()}
	if m.typ.PhaseBased() {
		par := m.par
		file.Transform = &par
	}
	return fileutil.SaveExt(fname, file)
}

// Load reads a measure saved by Save.
func Load(fname string) (*Measure, error) {
	var file measureFile
	if err := fileutil.LoadExt(fname, &file); err != nil {
		return nil, err
	}
	typ, err := ParseType(file.Type)
	if err != nil {
		return nil, err
	}
	var t *gwt.Transform
	if file.Transform != nil {
		if t, err = gwt.New(*file.Transform); err != nil {
			return nil, err
		}
	}
	return New(typ, t)
}
