package worker

import "os/exec"

func killProcess(cmd *exec.Cmd, _ bool) error {
	return cmd.Process.Kill()
}

func initCmd(cmd *exec.Cmd) {
	// No-op on Windows.
}
