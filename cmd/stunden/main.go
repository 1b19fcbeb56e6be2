package main

import "stunden/internal/cli"

func main() {
	cli.Execute()
}
