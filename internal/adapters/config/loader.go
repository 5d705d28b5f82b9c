// Package config provides the configuration loader for mortar.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"go.trai.ch/mortar/internal/core/domain"
	"go.trai.ch/mortar/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using an optional YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

var validTargetNameRegex = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

// Load builds the project description for dir. A missing mortar.yaml is not
// an error: every setting keeps its default, so a bare directory of sources
// is buildable as-is.
func (l *Loader) Load(dir string) (domain.Project, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return domain.Project{}, zerr.With(domain.ErrProjectDirNotFound, "dir", dir)
	}

	project := domain.NewProject(dir)

	configPath := filepath.Join(dir, domain.ConfigFileName)
	// #nosec G304 -- configPath is derived from the validated project dir
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return project, nil
		}
		readErr := zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
		return domain.Project{}, zerr.With(readErr, "path", configPath)
	}

	var file Mortarfile
	if parseErr := yaml.Unmarshal(data, &file); parseErr != nil {
		wrapped := zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
		return domain.Project{}, zerr.With(wrapped, "path", configPath)
	}

	l.warnUnknownSettings(data)

	return applyFile(project, file)
}

// warnUnknownSettings flags misspelled keys, which yaml.Unmarshal would
// otherwise drop silently.
func (l *Loader) warnUnknownSettings(data []byte) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return
	}

	unknown := make([]string, 0, len(raw))
	for key := range raw {
		switch key {
		case "target", "cxx", "cxxflags", "ldflags":
		default:
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)

	for _, key := range unknown {
		l.Logger.Warn(fmt.Sprintf("unknown setting %q in %s is ignored", key, domain.ConfigFileName))
	}
}

// applyFile overlays explicit settings from file onto the defaults.
func applyFile(project domain.Project, file Mortarfile) (domain.Project, error) {
	if file.Target != "" {
		if err := validateTargetName(file.Target); err != nil {
			return domain.Project{}, err
		}
		project.Target = domain.NewInternedString(file.Target)
	}

	if file.CXX != "" {
		compiler := strings.TrimSpace(file.CXX)
		if compiler == "" {
			return domain.Project{}, zerr.With(domain.ErrInvalidCompiler, "cxx", file.CXX)
		}
		project.Toolchain.Compiler = compiler
	}

	// A present but empty list is an explicit choice, so nil-ness decides
	// whether the defaults survive.
	if file.CXXFlags != nil {
		project.Toolchain.CompileFlags = file.CXXFlags
	}
	if file.LDFlags != nil {
		project.Toolchain.LinkFlags = file.LDFlags
	}

	return project, nil
}

// validateTargetName checks the configured executable name: it must be a
// plain file name with no path separators or traversal.
func validateTargetName(name string) error {
	if name == "." || name == ".." || !validTargetNameRegex.MatchString(name) {
		return zerr.With(domain.ErrInvalidTargetName, "target_name", name)
	}
	return nil
}
