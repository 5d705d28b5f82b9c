package detector

// DetectExported exposes detect for testing.
var DetectExported = detect
