package main

import "github.com/erdc/erdc/cmd/erdc/cmd"

func main() {
	cmd.Execute()
}
