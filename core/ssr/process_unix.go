//go:build !windows

package ssr

import (
	"os/exec"
	"syscall"
	"time"
)

type processHandle struct {
	cmd  *exec.Cmd
	done chan struct{}
}

func startProcess(c Command) (*processHandle, error) {
	cmd := exec.Command(c.Name, c.Args...)
	cmd.Dir = c.Dir
	cmd.Env = c.Env
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid: true,
	}

	if err := cmd.Start(); err != nil {
		return nil, err
	}

	p := &processHandle{cmd: cmd, done: make(chan struct{})}
	go func() {
		_ = cmd.Wait()
		close(p.done)
	}()
	return p, nil
}

func (p *processHandle) Pid() int {
	return p.cmd.Process.Pid
}

// Terminate sends SIGTERM to the whole process group so that node's children
// exit with it, then SIGKILL once grace has elapsed.
func (p *processHandle) Terminate(grace time.Duration) error {
	pgid, err := syscall.Getpgid(p.cmd.Process.Pid)
	if err == nil {
		_ = syscall.Kill(-pgid, syscall.SIGTERM)
	} else {
		_ = p.cmd.Process.Signal(syscall.SIGTERM)
	}

	select {
	case <-p.done:
		return nil
	case <-time.After(grace):
	}

	var killErr error
	if pgid > 0 {
		killErr = syscall.Kill(-pgid, syscall.SIGKILL)
	} else {
		killErr = p.cmd.Process.Kill()
	}
	select {
	case <-p.done:
		return nil
	case <-time.After(grace):
		if killErr != nil {
			return killErr
		}
		return syscall.ETIMEDOUT
	}
}
