package app

// ApplyOverrides exposes applyOverrides for testing.
var ApplyOverrides = applyOverrides
