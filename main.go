package main

import (
	"os"
	"runtime/debug"

	"github.com/gigurra/swplay/cmd/history"
	"github.com/gigurra/swplay/cmd/play"
)

func main() {
	cmd := play.Cmd()
	cmd.Version = appVersion()
	cmd.AddCommand(history.Cmd())
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func appVersion() string {
	bi, hasBuilInfo := debug.ReadBuildInfo()
	if !hasBuilInfo {
		return "unknown-(no build info)"
	}

	versionString := bi.Main.Version
	if versionString == "" {
		versionString = "unknown-(no version)"
	}

	return versionString
}
