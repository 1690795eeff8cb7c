// Command footcheck checks that site pages have a complete footer.
//
// Usage:
//
//	footcheck [url...]
//
// See --help for all available options.
package main

import (
	"os"

	"github.com/raysh454/footcheck/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
