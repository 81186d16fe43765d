package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRotatingWriterRotatesAtMaxSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "screencap.log")
	rw, err := newRotatingWriter(path, 16, 2)
	if err != nil {
		t.Fatalf("newRotatingWriter: %v", err)
	}
	defer rw.Close()

	for _, line := range []string{"first-line-0001\n", "second-line-002\n", "third-line-0003\n"} {
		if _, err := rw.Write([]byte(line)); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}

	current, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read current: %v", err)
	}
	if string(current) != "third-line-0003\n" {
		t.Fatalf("current = %q, want third line only", current)
	}

	b1, err := os.ReadFile(path + ".1")
	if err != nil {
		t.Fatalf("read backup 1: %v", err)
	}
	if !strings.HasPrefix(string(b1), "second") {
		t.Fatalf("backup 1 = %q, want second line", b1)
	}

	b2, err := os.ReadFile(path + ".2")
	if err != nil {
		t.Fatalf("read backup 2: %v", err)
	}
	if !strings.HasPrefix(string(b2), "first") {
		t.Fatalf("backup 2 = %q, want first line", b2)
	}
}

func TestRotatingWriterDropsOldestBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "screencap.log")
	rw, err := newRotatingWriter(path, 4, 1)
	if err != nil {
		t.Fatalf("newRotatingWriter: %v", err)
	}
	defer rw.Close()

	for _, line := range []string{"aaaa", "bbbb", "cccc"} {
		if _, err := rw.Write([]byte(line)); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}

	if _, err := os.Stat(path + ".2"); !os.IsNotExist(err) {
		t.Fatalf("expected no second backup, stat err = %v", err)
	}
	b1, _ := os.ReadFile(path + ".1")
	if string(b1) != "bbbb" {
		t.Fatalf("backup 1 = %q, want bbbb", b1)
	}
}

func TestOpenOutputWithoutFileUsesStderr(t *testing.T) {
	w, closer, err := OpenOutput("", 0, 0)
	if err != nil {
		t.Fatalf("OpenOutput: %v", err)
	}
	if w != os.Stderr {
		t.Fatalf("writer = %v, want os.Stderr", w)
	}
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}
