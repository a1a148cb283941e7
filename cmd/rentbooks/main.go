package main

import "github.com/rentbooks/rentbooks/internal/cli"

func main() {
	cli.Execute()
}
