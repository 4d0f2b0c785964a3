package main

import "github.com/paradoxe/paradoxe/internal/cli"

func main() {
	cli.Execute()
}
