package main

import (
	"github.com/gridsnake/gridsnake/internal/cli"
)

func main() {
	cli.Execute()
}
