package main

import "github.com/deploymenttheory/go-bmap/cmd"

func main() {
	cmd.Execute()
}
