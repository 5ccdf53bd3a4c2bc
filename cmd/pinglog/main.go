// pinglog - Ping Log Analyzer
//
// pinglog parses ping log files and reports latency statistics,
// high-latency records, and sequence-number gaps.
package main

import (
	"os"

	"pinglog/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
