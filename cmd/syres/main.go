package main

import (
	"syres/cmd/syres/cmd"
)

func main() {
	cmd.Execute()
}
