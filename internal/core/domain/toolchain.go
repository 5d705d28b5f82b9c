package domain

import "slices"

// DefaultCompiler is the toolchain command used when none is configured.
const DefaultCompiler = "g++"

// DefaultCompileFlags is the strict diagnostic set applied to every compile.
// Every enabled warning category is escalated to a hard error, debug symbols
// are always emitted, and the language standard is pinned.
var DefaultCompileFlags = []string{
	"-ggdb",
	"-pedantic-errors",
	"-Wall",
	"-Weffc++",
	"-Wextra",
	"-Wconversion",
	"-Wsign-conversion",
	"-Werror",
	"-std=c++20",
}

// Toolchain describes how sources are compiled and linked.
type Toolchain struct {
	// Compiler is the command invoked for both compiling and linking.
	Compiler string

	// CompileFlags are passed to every compile invocation.
	CompileFlags []string

	// LinkFlags are passed to the link invocation. Empty by default.
	LinkFlags []string
}

// DefaultToolchain returns the fixed toolchain used when no configuration
// overrides it.
func DefaultToolchain() Toolchain {
	return Toolchain{
		Compiler:     DefaultCompiler,
		CompileFlags: slices.Clone(DefaultCompileFlags),
	}
}

// CompileArgv builds the full command line that translates source into object.
func (tc Toolchain) CompileArgv(source, object string) []string {
	argv := make([]string, 0, len(tc.CompileFlags)+5)
	argv = append(argv, tc.Compiler)
	argv = append(argv, tc.CompileFlags...)
	argv = append(argv, "-c", source, "-o", object)
	return argv
}

// LinkArgv builds the full command line that combines objects into target.
// Link flags come first, matching the conventional $(CXX) $(LDFLAGS) order.
func (tc Toolchain) LinkArgv(objects []string, target string) []string {
	argv := make([]string, 0, len(tc.LinkFlags)+len(objects)+3)
	argv = append(argv, tc.Compiler)
	argv = append(argv, tc.LinkFlags...)
	argv = append(argv, objects...)
	argv = append(argv, "-o", target)
	return argv
}
