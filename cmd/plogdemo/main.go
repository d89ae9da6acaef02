// Command plogdemo drives the plog stack from the command line: emit entries
// through a configured logger, sweep or archive log directories, list levels.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
