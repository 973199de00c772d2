// cnvinfo - CNV header inspector
//
// cnvinfo reads the header block of CNV oceanographic recordings and reports
// the cast position, time, column descriptors and other header values.
package main

import (
	"os"

	"github.com/ccollicutt/cnvreader/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
