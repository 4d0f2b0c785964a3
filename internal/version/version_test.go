package version

import (
	"runtime/debug"
	"testing"
)

func TestBuildVersion(t *testing.T) {
	orig := readBuildInfo
	defer func() { readBuildInfo = orig }()

	readBuildInfo = func() (*debug.BuildInfo, bool) { return nil, false }
	if got := BuildVersion(); got != "dev" {
		t.Errorf("BuildVersion without build info = %q, want dev", got)
	}

	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}, true
	}
	if got := BuildVersion(); got != "dev" {
		t.Errorf("BuildVersion for devel build = %q, want dev", got)
	}

	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{Main: debug.Module{Version: "v1.2.3"}}, true
	}
	if got := BuildVersion(); got != "v1.2.3" {
		t.Errorf("BuildVersion = %q, want v1.2.3", got)
	}
}
