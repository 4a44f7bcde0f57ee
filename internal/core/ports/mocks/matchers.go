package mocks

import (
	"fmt"
	"slices"
	"strings"

	"go.trai.ch/rig/internal/core/domain"
	"go.uber.org/mock/gomock"
)

// CommandNamed matches a domain.Command by executable name and leading arguments.
func CommandNamed(name string, args ...string) gomock.Matcher {
	return commandMatcher{name: name, args: args}
}

type commandMatcher struct {
	name string
	args []string
}

func (m commandMatcher) Matches(x any) bool {
	c, ok := x.(domain.Command)
	if !ok || c.Name != m.name || len(c.Args) < len(m.args) {
		return false
	}
	return slices.Equal(c.Args[:len(m.args)], m.args)
}

func (m commandMatcher) String() string {
	return fmt.Sprintf("is command %q", strings.TrimSpace(m.name+" "+strings.Join(m.args, " ")))
}
