package main

import "github.com/jjanczur/SPDB/internal/cli"

var Version = "development"

func main() {
	cli.Execute(Version)
}
