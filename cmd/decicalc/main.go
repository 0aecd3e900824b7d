package main

import "github.com/tvukit/decimal/internal/cli"

func main() {
	cli.Execute()
}
