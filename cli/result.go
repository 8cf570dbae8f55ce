package cli

// CommandError signals a command failure with a specific exit code after
// the command has already rendered its own error output. Main centralizes
// exit handling instead of commands calling os.Exit directly.
type CommandError struct {
	exitCode int
}

// Error implements the error interface.
func (e *CommandError) Error() string { return "command failed" }

// ExitCode returns the exit code associated with this error.
func (e *CommandError) ExitCode() int { return e.exitCode }

// reportedError is returned by commands that have already printed a
// descriptive failure to the user.
func reportedError() *CommandError {
	return &CommandError{exitCode: 1}
}
