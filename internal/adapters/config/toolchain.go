package config

import (
	"bufio"
	"bytes"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.trai.ch/rig/internal/core/domain"
	"go.trai.ch/zerr"
)

type toolchainFile struct {
	Toolchain struct {
		Channel string `toml:"channel"`
	} `toml:"toolchain"`
}

// parseToolchainFile extracts the channel from a rust-toolchain file.
// Both the [toolchain] table form and the legacy single-line form are accepted.
func parseToolchainFile(data []byte) (string, error) {
	var tf toolchainFile
	if err := toml.Unmarshal(data, &tf); err == nil {
		if tf.Toolchain.Channel == "" {
			return "", zerr.Wrap(domain.ErrToolchainFileInvalid, "no [toolchain] channel")
		}
		return tf.Toolchain.Channel, nil
	}

	// Legacy format: the first line names the channel.
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.ContainsAny(line, " \t=[]\"'") {
			return "", zerr.With(zerr.Wrap(domain.ErrToolchainFileInvalid, "not a channel name"), "line", line)
		}
		return line, nil
	}
	return "", zerr.Wrap(domain.ErrToolchainFileInvalid, "empty toolchain file")
}
