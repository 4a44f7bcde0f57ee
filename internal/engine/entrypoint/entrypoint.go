// Package entrypoint renders the build script that stamps a version and hands
// its arguments to the build-tool wrapper.
package entrypoint

import (
	"bytes"
	"regexp"
	"text/template"

	"al.essio.dev/pkg/shellescape"
	"go.trai.ch/rig/internal/adapters/fs"
	"go.trai.ch/rig/internal/core/domain"
	"go.trai.ch/zerr"
)

const script = `#!/bin/sh
set -eu
cd "$(dirname "$0")"
{{ .VersionEnv }}=$(git describe --tags --always)
export {{ .VersionEnv }}
{{- if .DefaultArgs }}
if [ $# -eq 0 ]; then
	set --{{ range .DefaultArgs }} {{ quote . }}{{ end }}
fi
{{- end }}
exec {{ quote .Wrapper }}{{ if .ProjectDir }} -p {{ quote .ProjectDir }}{{ end }} "$@"
`

var (
	tmpl    = template.Must(template.New("entrypoint").Funcs(template.FuncMap{"quote": shellescape.Quote}).Parse(script))
	envName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// Generator renders and writes entry point scripts.
type Generator struct{}

// NewGenerator creates a new Generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate renders the script for ep.
func (g *Generator) Generate(ep domain.EntryPoint) ([]byte, error) {
	if ep.Wrapper == "" {
		return nil, zerr.Wrap(domain.ErrConfigInvalid, "entrypoint needs a wrapper")
	}
	if ep.VersionEnv == "" {
		ep.VersionEnv = domain.DefaultVersionEnv
	}
	if !envName.MatchString(ep.VersionEnv) {
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigInvalid, "not a valid environment variable name"), "version_env", ep.VersionEnv)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, ep); err != nil {
		return nil, zerr.Wrap(domain.ErrEntryPointWriteFailed, err.Error())
	}
	return buf.Bytes(), nil
}

// Write renders the script and installs it at ep.Path with mode 0755.
func (g *Generator) Write(ep domain.EntryPoint) error {
	data, err := g.Generate(ep)
	if err != nil {
		return err
	}
	if err := fs.WriteFileAtomicMode(ep.Path, data, domain.ExecPerm); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrEntryPointWriteFailed, err.Error()), "path", ep.Path)
	}
	return nil
}
