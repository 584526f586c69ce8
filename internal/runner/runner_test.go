package runner

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/reactor-labs/reactor/internal/report"
)

func requireShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not supported on windows")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available, skipping")
	}
}

// fakeTool writes an executable script that records its arguments and
// selected environment variables to <dir>/calls.log, then exits with code.
func fakeTool(t *testing.T, dir string, code int) string {
	t.Helper()
	path := filepath.Join(dir, "fake-tool")
	script := "#!/bin/sh\n" +
		"echo \"$*\" >> \"" + filepath.Join(dir, "calls.log") + "\"\n" +
		"echo \"DEV=$REACTOR_DEV_SERVER_URL FROM_DOTENV=$FROM_DOTENV\" >> \"" + filepath.Join(dir, "env.log") + "\"\n" +
		"exit " + strconv.Itoa(code) + "\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func readLog(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("reading %s: %v", name, err)
	}
	return string(data)
}

func quietRunner() *Runner {
	return &Runner{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
}

func TestRunCapturesOutputAndExitCode(t *testing.T) {
	requireShell(t)
	r := quietRunner()

	out, err := r.Run(context.Background(), t.TempDir(), "sh", "-c", "echo hello; echo oops >&2; exit 3")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", out.ExitCode)
	}
	if out.Stdout != "hello\n" {
		t.Errorf("Stdout = %q", out.Stdout)
	}
	if out.Stderr != "oops\n" {
		t.Errorf("Stderr = %q", out.Stderr)
	}
	if got := r.Stdout.(*bytes.Buffer).String(); got != "hello\n" {
		t.Errorf("streamed stdout = %q", got)
	}
}

func TestRunMissingBinary(t *testing.T) {
	_, err := quietRunner().Run(context.Background(), "", "definitely-not-a-real-binary-xyz")
	if err == nil {
		t.Fatal("expected error for missing binary")
	}
}

func TestRunEchoesCommand(t *testing.T) {
	requireShell(t)
	color.NoColor = true
	var out bytes.Buffer
	r := quietRunner()
	r.Reporter = report.New(&out, &bytes.Buffer{})

	if _, err := r.Run(context.Background(), "", "sh", "-c", "true"); err != nil {
		t.Fatal(err)
	}
	if out.String() != "sh -c true\n" {
		t.Errorf("echoed %q", out.String())
	}
}

func TestRunCancelled(t *testing.T) {
	requireShell(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := quietRunner().Run(ctx, "", "sh", "-c", "sleep 5")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestNPMCommands(t *testing.T) {
	requireShell(t)
	dir := t.TempDir()
	n := NewNPM(quietRunner(), fakeTool(t, dir, 0))
	ctx := context.Background()

	if err := n.Init(ctx, dir); err != nil {
		t.Fatal(err)
	}
	if err := n.AddDevDependency(ctx, dir, "reactor"); err != nil {
		t.Fatal(err)
	}
	if err := n.Install(ctx, dir); err != nil {
		t.Fatal(err)
	}

	want := "init -y\ninstall --save-dev reactor\ninstall --omit=dev\n"
	if got := readLog(t, dir, "calls.log"); got != want {
		t.Errorf("calls = %q, want %q", got, want)
	}
}

func TestNPMNonZeroExit(t *testing.T) {
	requireShell(t)
	dir := t.TempDir()
	n := NewNPM(quietRunner(), fakeTool(t, dir, 1))

	err := n.Install(context.Background(), dir)
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("err = %v, want *ExitError", err)
	}
	if exitErr.Code != 1 {
		t.Errorf("Code = %d", exitErr.Code)
	}
}

func TestPackagerArgs(t *testing.T) {
	requireShell(t)
	dir := t.TempDir()
	p := NewPackager(NewNPM(quietRunner(), fakeTool(t, dir, 2)), "")

	code, err := p.Package(context.Background(), PackageRequest{
		Dir:             dir,
		Source:          "build/prod",
		ElectronVersion: "28.1.0",
		Out:             "dist",
		Extra:           []string{"--platform=linux"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if code != 2 {
		t.Errorf("code = %d, want 2", code)
	}
	want := "exec -- electron-packager build/prod --electronVersion=28.1.0 --out=dist --overwrite --platform=linux\n"
	if got := readLog(t, dir, "calls.log"); got != want {
		t.Errorf("calls = %q, want %q", got, want)
	}
}

func TestElectronLaunchEnvironment(t *testing.T) {
	requireShell(t)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, EnvFile), []byte("FROM_DOTENV=yes\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	env, err := Environ(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	r := quietRunner()
	r.Env = env

	e := NewElectron(NewNPM(r, fakeTool(t, dir, 0)), "", dir)
	err = e.Launch(context.Background(), "/tool/dist/main.dev.js",
		map[string]string{"REACTOR_DEV_SERVER_URL": "http://localhost:3000"}, []string{"--inspect"})
	if err != nil {
		t.Fatalf("Launch: %v", err)
	}

	if got := readLog(t, dir, "calls.log"); got != "exec -- electron /tool/dist/main.dev.js --inspect\n" {
		t.Errorf("calls = %q", got)
	}
	if got := readLog(t, dir, "env.log"); !strings.Contains(got, "DEV=http://localhost:3000 FROM_DOTENV=yes") {
		t.Errorf("env = %q", got)
	}
	for _, kv := range r.Env {
		if strings.HasPrefix(kv, "REACTOR_DEV_SERVER_URL=") {
			t.Error("Launch mutated the shared runner environment")
		}
	}
}

func TestElectronLaunchCancelled(t *testing.T) {
	requireShell(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	e := NewElectron(NewNPM(quietRunner(), "sh"), "", t.TempDir())
	if err := e.Launch(ctx, "x", nil, nil); err != nil {
		t.Errorf("cancelled launch returned %v", err)
	}
}

func TestEnvironOverlay(t *testing.T) {
	dir := t.TempDir()
	content := "A=from-file\nB=from-file\n"
	if err := os.WriteFile(filepath.Join(dir, EnvFile), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("A", "from-process")

	env, err := Environ(dir, map[string]string{"B": "from-extra"})
	if err != nil {
		t.Fatal(err)
	}
	got := map[string]string{}
	for _, kv := range env {
		k, v, _ := strings.Cut(kv, "=")
		got[k] = v
	}
	if got["A"] != "from-file" {
		t.Errorf("A = %q, want from-file", got["A"])
	}
	if got["B"] != "from-extra" {
		t.Errorf("B = %q, want from-extra", got["B"])
	}
}

func TestEnvironWithoutDotenv(t *testing.T) {
	env, err := Environ(t.TempDir(), map[string]string{"REACTOR_RUNNER_TEST_X": "1"})
	if err != nil {
		t.Fatal(err)
	}
	if env[len(env)-1] != "REACTOR_RUNNER_TEST_X=1" {
		t.Errorf("last = %q", env[len(env)-1])
	}
}
