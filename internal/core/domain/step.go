package domain

import "strings"

// StepStatus represents the lifecycle state of a provisioning step.
type StepStatus string

const (
	// StepPending indicates the step has not started.
	StepPending StepStatus = "pending"
	// StepRunning indicates the step is executing.
	StepRunning StepStatus = "running"
	// StepCompleted indicates the step did work and succeeded.
	StepCompleted StepStatus = "completed"
	// StepFailed indicates the step failed and aborted the pipeline.
	StepFailed StepStatus = "failed"
	// StepCached indicates everything the step covers was already installed.
	StepCached StepStatus = "cached"
	// StepSkipped indicates the step was disabled by configuration.
	StepSkipped StepStatus = "skipped"
)

// IsTerminal checks if a status is a terminal state.
func (s StepStatus) IsTerminal() bool {
	switch s {
	case StepCompleted, StepFailed, StepCached, StepSkipped:
		return true
	default:
		return false
	}
}

// NormalizeStepStatus converts a string to a StepStatus, defaulting to pending if unknown.
func NormalizeStepStatus(s string) StepStatus {
	switch StepStatus(strings.ToLower(s)) {
	case StepRunning:
		return StepRunning
	case StepCompleted:
		return StepCompleted
	case StepFailed:
		return StepFailed
	case StepCached:
		return StepCached
	case StepSkipped:
		return StepSkipped
	default:
		return StepPending
	}
}

// LogLevel represents the severity of a step log line, mirroring the standard slog levels.
type LogLevel int

const (
	// LogLevelDebug represents debug-level verbosity.
	LogLevelDebug LogLevel = -4
	// LogLevelInfo represents informational verbosity.
	LogLevelInfo LogLevel = 0
	// LogLevelWarn represents warning verbosity.
	LogLevelWarn LogLevel = 4
	// LogLevelError represents error verbosity.
	LogLevelError LogLevel = 8
)

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// StepReport is the outcome of one provisioning step.
type StepReport struct {
	Name   string
	Status StepStatus
	Err    error
}
