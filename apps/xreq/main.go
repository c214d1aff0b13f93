package main

import "github.com/kyrosle/xdiff/apps/cli/cmd"

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	cmd.ExecuteRequest(version, buildTime)
}
