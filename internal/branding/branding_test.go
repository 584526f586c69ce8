package branding

import "testing"

func TestEmbeddedIdentity(t *testing.T) {
	if got := CLIName(); got != "reactor" {
		t.Errorf("CLIName() = %q, want %q", got, "reactor")
	}
	if got := PackageName(); got != "reactor" {
		t.Errorf("PackageName() = %q, want %q", got, "reactor")
	}
	if got := HomeDir(); got != ".reactor" {
		t.Errorf("HomeDir() = %q, want %q", got, ".reactor")
	}
}

func TestEnvVar(t *testing.T) {
	if got := EnvVar("dev_port"); got != "REACTOR_DEV_PORT" {
		t.Errorf("EnvVar(dev_port) = %q, want %q", got, "REACTOR_DEV_PORT")
	}
}
