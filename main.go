package main

import "github.com/Cyber-Syntax/auto-penguin-setup/cmd"

func main() {
	cmd.Execute()
}
