package main

import (
	"github.com/smartasso/process-async-helper/internal/cli"
	"github.com/smartasso/process-async-helper/internal/metrics"
)

func main() {
	metrics.EmitBuildInfo()
	cli.Execute()
}
