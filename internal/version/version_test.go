package version

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	origCommit, origDate := Commit, Date
	t.Cleanup(func() { Commit, Date = origCommit, origDate })

	Commit, Date = "unknown", "unknown"
	if s := String(); !strings.HasPrefix(s, "biocrayon version "+Version+" (") {
		t.Errorf("String() = %q", s)
	}

	Commit, Date = "0123456789abcdef", "2026-01-02T03:04:05Z"
	if s := String(); !strings.Contains(s, "commit: 01234567,") || !strings.Contains(s, "built: 2026-01-02T03:04:05Z") {
		t.Errorf("String() = %q", s)
	}

	Commit = "abc"
	if s := String(); !strings.Contains(s, "commit: abc,") {
		t.Errorf("String() with short commit = %q", s)
	}
}

func TestGetInfo(t *testing.T) {
	info := GetInfo()
	if info.Version != Short() || info.GoVersion == "" || !strings.Contains(info.Platform, "/") {
		t.Errorf("GetInfo() = %+v", info)
	}
}
