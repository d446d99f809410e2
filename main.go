package main

import "github.com/KaramelBytes/datachat-cli/cmd"

func main() {
	cmd.Execute()
}
