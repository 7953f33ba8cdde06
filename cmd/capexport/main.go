// Command capexport exports RFSoC captures to TDMS files.
package main

import (
	"os"

	"github.com/robert-malhotra/go-tdms/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
