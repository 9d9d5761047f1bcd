package main

import (
	"log"
)

// Version & commit strings injected at build with -ldflags -X...
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	err := newRootCmd().Execute()
	if err != nil {
		log.Fatalf("failed to run chainstate: %v", err)
	}
}
