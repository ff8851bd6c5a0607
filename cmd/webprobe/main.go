package main

import "github.com/probelab-dev/webprobe/pkg/cli"

func main() {
	cli.Execute()
}
