package filesystem

import (
	"path/filepath"
	"testing"
)

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	tests := []struct {
		in   string
		want string
	}{
		{"~/.weathercli", "/home/tester/.weathercli"},
		{"~", "/home/tester"},
		{"/var/lib/weather", "/var/lib/weather"},
		{"data/../data.json", "data.json"},
	}
	for _, tt := range tests {
		if got := ExpandPath(tt.in); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolveIn(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	if got := ResolveIn("~/.weathercli", "data.json"); got != filepath.Join("/home/tester/.weathercli", "data.json") {
		t.Errorf("relative path not joined: %q", got)
	}
	if got := ResolveIn("~/.weathercli", "/tmp/weather.log"); got != "/tmp/weather.log" {
		t.Errorf("absolute path should be kept: %q", got)
	}
	if got := ResolveIn("~/.weathercli", ""); got != "" {
		t.Errorf("empty path should stay empty: %q", got)
	}
}
