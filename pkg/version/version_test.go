package version

import (
	"encoding/json"
	"regexp"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersion_FollowsSemverOrDev(t *testing.T) {
	// Given: the version package is imported

	// When: accessing Version

	// Then: it is "dev" for builds without ldflags, semver otherwise
	require.NotEmpty(t, Version)
	if Version == "dev" {
		return
	}
	semverRegex := regexp.MustCompile(`^\d+\.\d+\.\d+(-[a-zA-Z0-9.]+)?$`)
	require.True(t, semverRegex.MatchString(Version), "Version should follow semver format, got: %s", Version)
}

func TestString_WithInjectedBuildInfo(t *testing.T) {
	// Given: build info as ldflags would inject it
	oldVersion, oldCommit, oldDate := Version, Commit, Date
	t.Cleanup(func() { Version, Commit, Date = oldVersion, oldCommit, oldDate })
	Version, Commit, Date = "1.2.3", "abc1234", "2026-01-02T03:04:05Z"

	// When: formatting
	str := String()

	// Then: every field appears in the one-line summary
	assert.Equal(t,
		"tocgen 1.2.3 (commit: abc1234, built: 2026-01-02T03:04:05Z, go: "+GoVersion+")",
		str)
	assert.Equal(t, "1.2.3", Short())
}

func TestGetInfo_MatchesRuntime(t *testing.T) {
	// When: calling GetInfo()
	info := GetInfo()

	// Then: fields mirror the package variables and runtime
	assert.Equal(t, Version, info.Version)
	assert.Equal(t, Commit, info.Commit)
	assert.Equal(t, Date, info.Date)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, runtime.GOOS, info.OS)
	assert.Equal(t, runtime.GOARCH, info.Arch)
}

func TestGetInfo_JSONFieldNames(t *testing.T) {
	// When: serializing GetInfo() to JSON
	data, err := json.Marshal(GetInfo())
	require.NoError(t, err)

	// Then: snake_case keys are used
	var parsed map[string]string
	require.NoError(t, json.Unmarshal(data, &parsed))
	for _, key := range []string{"version", "commit", "date", "go_version", "os", "arch"} {
		assert.Contains(t, parsed, key)
	}
}
