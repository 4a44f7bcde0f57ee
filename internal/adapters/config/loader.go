// Package config provides the configuration loader for rig.
package config

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/rig/internal/adapters/fs"
	"go.trai.ch/rig/internal/core/domain"
	"go.trai.ch/rig/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// SupportedVersion is the only rig.yaml schema version understood by this loader.
const SupportedVersion = "1"

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	logger ports.Logger
	getenv func(string) string
	getwd  func() (string, error)
	exists func(string) bool
}

// NewLoader creates a Loader reading overrides from the process environment.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger, getenv: os.Getenv, getwd: os.Getwd, exists: func(p string) bool { return fs.Exists(p) }}
}

// containerMarkers are files container runtimes place in the root filesystem.
var containerMarkers = []string{"/.dockerenv", "/run/.containerenv"}

// inContainer reports whether rig runs inside a container image build or container.
func (l *Loader) inContainer() bool {
	if l.getenv("container") != "" {
		return true
	}
	for _, marker := range containerMarkers {
		if l.exists(marker) {
			return true
		}
	}
	return false
}

// Load reads the configuration at path and returns the resolved plan.
// An empty path falls back to RIG_CONFIG, then to the nearest rig.yaml above
// the working directory, then to the built-in defaults rooted at the working directory.
func (l *Loader) Load(path string) (*domain.Plan, error) {
	cwd, err := l.getwd()
	if err != nil {
		return nil, zerr.Wrap(domain.ErrConfigReadFailed, err.Error())
	}

	if path == "" {
		path = l.getenv(domain.EnvConfig)
	}
	if path == "" {
		path = discover(cwd)
	}

	rf := Default()
	baseDir := cwd
	if path == "" {
		l.logger.Info("no " + domain.ConfigFileName + " found, using built-in defaults")
	} else {
		if !filepath.IsAbs(path) {
			path = filepath.Join(cwd, path)
		}
		if err := decodeFile(path, &rf); err != nil {
			return nil, err
		}
		baseDir = filepath.Dir(path)
	}

	if rf.Version != SupportedVersion {
		invalid := zerr.With(zerr.Wrap(domain.ErrConfigInvalid, "unsupported config version"), "version", rf.Version)
		return nil, zerr.With(invalid, "path", path)
	}

	applyEnv(&rf, l.getenv)

	root := resolve(baseDir, rf.Root)
	return l.build(rf, root)
}

// discover walks up from dir looking for rig.yaml. It returns "" when none exists.
func discover(dir string) string {
	for {
		candidate := filepath.Join(dir, domain.ConfigFileName)
		if fs.Exists(candidate) {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

func decodeFile(path string, rf *Rigfile) error {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrConfigReadFailed, err.Error()), "path", path)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(rf); err != nil && !errors.Is(err, io.EOF) {
		return zerr.With(zerr.Wrap(domain.ErrConfigParseFailed, err.Error()), "path", path)
	}
	return nil
}

// resolve makes p absolute against base. Empty stays empty.
func resolve(base, p string) string {
	if p == "" {
		return ""
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}
