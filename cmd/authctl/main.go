// authctl is a command-line client for the quickswap auth server.
package main

import (
	"os"
)

func main() {
	if err := NewRootCmd(nil).Execute(); err != nil {
		os.Exit(1)
	}
}
