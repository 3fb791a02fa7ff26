package cmd

import (
	"path/filepath"
	"testing"
)

func TestExpandPathEnvVar(t *testing.T) {
	t.Setenv("CDUMP_TEST_DIR", "/srv/code")

	got, err := expandPath("$CDUMP_TEST_DIR/main.c")
	if err != nil {
		t.Fatalf("expandPath: %v", err)
	}
	if got != "/srv/code/main.c" {
		t.Errorf("expanded = %q, want /srv/code/main.c", got)
	}

	got, err = expandPath("${CDUMP_TEST_DIR}/main.c")
	if err != nil {
		t.Fatalf("expandPath: %v", err)
	}
	if got != "/srv/code/main.c" {
		t.Errorf("expanded = %q, want /srv/code/main.c", got)
	}
}

func TestExpandPathHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/main.c")
	if err != nil {
		t.Fatalf("expandPath: %v", err)
	}
	if got != filepath.Join(home, "main.c") {
		t.Errorf("expanded = %q, want under %q", got, home)
	}
}

func TestExpandPathUserFormRejected(t *testing.T) {
	if _, err := expandPath("~somebody/main.c"); err == nil {
		t.Error("expected error for ~user path")
	}
}

func TestExpandPathEmpty(t *testing.T) {
	if _, err := expandPath(""); err == nil {
		t.Error("expected error for empty path")
	}
}

func TestExpandPathPlain(t *testing.T) {
	got, err := expandPath("./main.c")
	if err != nil {
		t.Fatalf("expandPath: %v", err)
	}
	if got != "./main.c" {
		t.Errorf("expanded = %q, want ./main.c", got)
	}
}
