// Package runner executes external snapshot tool invocations.
//
// A Command describes one invocation (tool, argv, owning tier); the Runner
// interface executes it synchronously. ExecRunner is the real implementation
// on top of os/exec, inheriting the parent's stdout/stderr so the external
// tool's output reaches the operator unchanged. A non-zero exit is reported
// as a CommandError carrying the tier and exit code.
package runner
