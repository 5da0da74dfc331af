//go:build !wasm

package sqlorm

// Ormc generates model declarations from annotated Go structs.
type Ormc struct {
	logSink
	rootDir string
}

// NewOrmc creates a generator that scans the current directory.
func NewOrmc() *Ormc {
	return &Ormc{rootDir: "."}
}

// SetRootDir sets the directory Run walks looking for model.go and
// models.go files.
func (o *Ormc) SetRootDir(dir string) {
	o.rootDir = dir
}
