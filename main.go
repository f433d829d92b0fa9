package main

import "github.com/ghostlogs/ghost/cmd"

func main() {
	cmd.Execute()
}
