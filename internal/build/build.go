// Package build holds build-time information.
package build

// Version is the rig release reported by `rig version` and sent as the HTTP User-Agent.
// Override with -ldflags "-X go.trai.ch/rig/internal/build.Version=v1.2.3".
var Version = "dev"
