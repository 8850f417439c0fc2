// Package process identifies the agent process that fired a hook.
package process

import (
	"os"
	"strconv"
)

// AgentPID returns the PID of the Claude process this hook belongs to.
// CLAUDE_PID wins when set; otherwise the hook's parent is the agent.
func AgentPID() int {
	if pidStr := os.Getenv("CLAUDE_PID"); pidStr != "" {
		if pid, err := strconv.Atoi(pidStr); err == nil && pid > 0 {
			return pid
		}
	}
	return os.Getppid()
}
