package domain

import "path/filepath"

const (
	// DefaultTarget is the executable name used when none is configured.
	DefaultTarget = "noob"

	// ConfigFileName is the optional per-project configuration file.
	ConfigFileName = "mortar.yaml"
)

// Project describes one buildable directory: where its sources live, what
// the linked executable is called, and the toolchain that produces it.
type Project struct {
	Dir       InternedString
	Target    InternedString
	Toolchain Toolchain
}

// NewProject creates a Project for dir with all defaults applied.
func NewProject(dir string) Project {
	return Project{
		Dir:       NewInternedString(filepath.Clean(dir)),
		Target:    NewInternedString(DefaultTarget),
		Toolchain: DefaultToolchain(),
	}
}

// TargetPath returns the path of the target executable inside the project
// directory.
func (p Project) TargetPath() string {
	return filepath.Join(p.Dir.String(), p.Target.String())
}
