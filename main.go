package main

import (
	"github.com/abe-nagisa/forge/cmd"
)

func main() {
	cmd.Execute()
}
