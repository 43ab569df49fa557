package main

import "github.com/agentry/mcplink/cmd"

func main() {
	cmd.Execute()
}
