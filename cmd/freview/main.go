// Command freview reviews Flask projects for structural issues.
package main

import (
	"os"

	"github.com/Chatelo/freview/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
