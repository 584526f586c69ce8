package runner

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"testing"
	"time"
)

// processGone reports whether pid has exited. Zombies count as gone since
// nothing may reap orphans inside a container.
func processGone(pid int) bool {
	if err := syscall.Kill(pid, 0); err != nil {
		return true
	}
	stat, err := os.ReadFile("/proc/" + strconv.Itoa(pid) + "/stat")
	if err != nil {
		return true
	}
	// state follows the parenthesised command name
	rest := string(stat)[strings.LastIndexByte(string(stat), ')')+1:]
	return strings.HasPrefix(strings.TrimSpace(rest), "Z")
}

func TestElectronLaunchCancelKillsChildren(t *testing.T) {
	requireShell(t)
	dir := t.TempDir()
	pidFile := filepath.Join(dir, "child.pid")
	npm := filepath.Join(dir, "fake-npm")
	script := "#!/bin/sh\n" +
		"sleep 300 &\n" +
		"echo $! > \"" + pidFile + ".tmp\"\n" +
		"mv \"" + pidFile + ".tmp\" \"" + pidFile + "\"\n" +
		"wait\n"
	if err := os.WriteFile(npm, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	e := NewElectron(NewNPM(quietRunner(), npm), "", dir)
	done := make(chan error, 1)
	go func() { done <- e.Launch(ctx, "main.dev.js", nil, nil) }()

	var pid int
	deadline := time.Now().Add(10 * time.Second)
	for pid == 0 {
		if time.Now().After(deadline) {
			t.Fatal("host runtime never started its child")
		}
		if data, err := os.ReadFile(pidFile); err == nil {
			pid, _ = strconv.Atoi(strings.TrimSpace(string(data)))
		}
		time.Sleep(20 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Launch after cancel: %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("Launch did not return after cancel")
	}

	deadline = time.Now().Add(5 * time.Second)
	for !processGone(pid) {
		if time.Now().After(deadline) {
			syscall.Kill(pid, syscall.SIGKILL)
			t.Fatalf("child %d still running after cancel", pid)
		}
		time.Sleep(20 * time.Millisecond)
	}
}
