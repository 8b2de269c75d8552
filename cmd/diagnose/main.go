// Command diagnose runs analyses locally against the built-in or configured knowledge
// sources, without the audit store, cache or event bus.
package main

import (
	"os"

	"github.com/synaptica-ai/diagnostics/pkg/common/logger"
)

func main() {
	logger.InitWithLevel(os.Getenv("LOG_LEVEL"))
	logger.Log.SetOutput(os.Stderr)

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
