// Command tablelayout lays out the tables of HTML documents and prints
// their geometry or their resolved collapsed borders.
package main

import (
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
