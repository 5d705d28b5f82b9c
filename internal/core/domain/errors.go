package domain

import "go.trai.ch/zerr"

var (
	// ErrProjectDirNotFound is returned when the project directory does not exist.
	ErrProjectDirNotFound = zerr.New("project directory not found")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidTargetName is returned when the configured target name is empty
	// or contains a path separator.
	ErrInvalidTargetName = zerr.New("invalid target name")

	// ErrInvalidCompiler is returned when the configured compiler command is blank.
	ErrInvalidCompiler = zerr.New("invalid compiler command")

	// ErrScanFailed is returned when the project directory cannot be scanned for sources.
	ErrScanFailed = zerr.New("failed to scan project directory")

	// ErrCompileFailed is returned when the toolchain rejects a translation unit.
	ErrCompileFailed = zerr.New("compilation failed")

	// ErrLinkFailed is returned when the toolchain cannot link the target executable.
	ErrLinkFailed = zerr.New("link failed")

	// ErrBuildExecutionFailed is returned when the build pipeline fails.
	ErrBuildExecutionFailed = zerr.New("build execution failed")

	// ErrTargetNotBuilt is returned when the target executable is missing at run time.
	ErrTargetNotBuilt = zerr.New("target executable not built")

	// ErrProgramExit marks a failure that belongs to the executed program, not
	// to mortar. Its exit status is propagated without further reporting.
	ErrProgramExit = zerr.New("program exited with non-zero status")

	// ErrCleanFailed is returned when removing build artifacts fails.
	ErrCleanFailed = zerr.New("failed to remove build artifacts")

	// ErrWatchFailed is returned when the file watcher cannot be started.
	ErrWatchFailed = zerr.New("failed to watch project directory")
)
