package gwt

import "github.com/jvlmdr/go-file/fileutil"

// Save writes the seven configuration parameters to a file.
// The kernel bank and the frequency table are deterministic given the
// parameters and are not persisted.
func (t *Transform) Save(fname string) error {
	return fileutil.SaveExt(fname, t.par)
}

// Load reads a transform configuration saved by Save.
func Load(fname string) (*Transform, error) {
	var par Params
	if err := fileutil.LoadExt(fname, &par); err != nil {
		return nil, err
	}
	return New(par)
}
