package domain

// Names of the trace spans and attributes emitted by the dev server.
const (
	// SpanRebuild covers one rebuild of the target platform.
	SpanRebuild = "devserver.rebuild"
	// AttrPlatform holds the platform name of a rebuild span.
	AttrPlatform = "nativedev.platform"
	// TracerName is the instrumentation scope of the dev server.
	TracerName = "go.trai.ch/nativedev"
)
