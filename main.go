// Command delegate loads HTML pages and routes their events to declared
// actions.
package main

import (
	"os"

	"github.com/chrisuehlinger/delegate/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
