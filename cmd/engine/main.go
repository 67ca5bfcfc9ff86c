package main

import "github.com/snakefield/engine/cmd/engine/commands"

func main() {
	commands.Execute()
}
