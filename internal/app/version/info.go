// Package version holds build metadata injected with -ldflags, e.g.
//
//	-X github.com/dgc-network/smart/internal/app/version.Version=v0.4.1
package version

import (
	"runtime"
	"time"
)

var (
	Version   = "dev"
	BuildTime = "unknown" // RFC3339
	BuildEnv  = "development"

	GoVersion = runtime.Version()
	GoArch    = runtime.GOARCH
	GoOS      = runtime.GOOS
)

type BuildInfo struct {
	Version   string `json:"version"`
	BuildTime string `json:"build_time"`
	BuildEnv  string `json:"build_env"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

func GetBuildInfo() *BuildInfo {
	return &BuildInfo{
		Version:   Version,
		BuildTime: displayTime(BuildTime),
		BuildEnv:  BuildEnv,
		GoVersion: GoVersion,
		Platform:  GoOS + "/" + GoArch,
	}
}

func displayTime(value string) string {
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return value
	}
	return parsed.UTC().Format("2006-01-02 15:04:05 MST")
}

func IsProductionBuild() bool { return BuildEnv == "production" }
