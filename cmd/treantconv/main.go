package main

import (
	"github.com/treantkit/treantconv/cmd/treantconv/cmd"
)

func main() {
	cmd.Execute()
}
