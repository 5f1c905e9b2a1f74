package main

import "github.com/agentic-research/astdump/cmd"

func main() {
	cmd.Execute()
}
