package main

import "fskanban/cmd/fskanban/commands"

func main() {
	commands.Execute()
}
