package main

import (
	"fmt"
	"os"

	"github.com/creativemarket/dog-statsd/cli"
	_ "github.com/creativemarket/dog-statsd/diagnostics"
)

func main() {
	if err := cli.Run(os.Args); err != nil {
		fmt.Printf("%+v\n", err)
		os.Exit(1)
	}
}
