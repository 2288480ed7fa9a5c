package browser

// NewForTest creates an Opener with injected launchers.
func NewForTest(goos string, openDefault func(string) error, start func(string, ...string) error) *Opener {
	return &Opener{goos: goos, openDefault: openDefault, start: start}
}
