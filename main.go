package main

import "github.com/tonimelisma/copilot-search/cmd"

func main() {
	cmd.Execute()
}
