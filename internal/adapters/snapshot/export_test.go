package snapshot

// NewIndexWithClient exposes the test constructor.
var NewIndexWithClient = newIndexWithClient

// HostSuite exposes os-release parsing.
var HostSuite = hostSuite
