package main

import (
	"github.com/dallingham/regenerate-sub000/cmd"
)

func main() {
	cmd.Execute()
}
