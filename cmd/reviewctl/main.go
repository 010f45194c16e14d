// Reviewctl reviews a code snippet from the terminal.
//
// Usage:
//
//	reviewctl review main.go                               # in-process, provider from config
//	cat main.go | reviewctl review -s http://localhost:5000 # through a running server
package main

import (
	"os"

	"github.com/bryanwahyu/ai-code-reviewer/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
