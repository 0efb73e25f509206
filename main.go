package main

import (
	"github.com/fansync/fansync/cmd"
)

func main() {
	cmd.Execute()
}
