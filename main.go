package main

import (
	"fmt"
	"os"

	"github.com/jesspatton/spectree/cli"
)

// main is the entry point of the application.
func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "spectree: %v\n", err)
		os.Exit(1)
	}
}
