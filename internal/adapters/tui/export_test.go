package tui

// MaxLogLinesExported exposes maxLogLines for testing.
const MaxLogLinesExported = maxLogLines
