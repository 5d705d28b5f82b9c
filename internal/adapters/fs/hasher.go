package fs

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/mortar/internal/core/domain"
	"go.trai.ch/mortar/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher provides content hashing for build inputs.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// HashFile computes the XXHash of a file's content.
func (h *Hasher) HashFile(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return hasher.Sum64(), nil
}

// HashBuildInputs folds the project settings and every source file's content
// into one hex digest. Sources are hashed in the order given; callers pass
// the scanner's sorted listing so the digest is stable across runs.
func (h *Hasher) HashBuildInputs(project domain.Project, sources []string) (string, error) {
	hasher := xxhash.New()

	h.hashProjectDefinition(project, hasher)

	for _, source := range sources {
		if err := h.hashSourceFile(source, hasher); err != nil {
			return "", err
		}
	}

	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}

// hashProjectDefinition hashes the settings that shape every compile and link.
func (h *Hasher) hashProjectDefinition(project domain.Project, hasher *xxhash.Digest) {
	_, _ = hasher.WriteString(project.Target.String())
	_, _ = hasher.Write([]byte{0}) // Separator

	_, _ = hasher.WriteString(project.Toolchain.Compiler)
	_, _ = hasher.Write([]byte{0})

	for _, flag := range project.Toolchain.CompileFlags {
		_, _ = hasher.WriteString(flag)
		_, _ = hasher.Write([]byte{0})
	}
	_, _ = hasher.Write([]byte{0}) // Section separator

	for _, flag := range project.Toolchain.LinkFlags {
		_, _ = hasher.WriteString(flag)
		_, _ = hasher.Write([]byte{0})
	}
	_, _ = hasher.Write([]byte{0})
}

// hashSourceFile hashes a source path and its content digest.
func (h *Hasher) hashSourceFile(path string, hasher *xxhash.Digest) error {
	_, _ = hasher.WriteString(path)
	_, _ = hasher.Write([]byte{0})

	hash, err := h.HashFile(path)
	if err != nil {
		return err
	}

	if err := binary.Write(hasher, binary.LittleEndian, hash); err != nil {
		return zerr.Wrap(err, "failed to write hash to digest")
	}
	return nil
}
