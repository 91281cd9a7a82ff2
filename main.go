package main

import "github.com/snf/qa-bot-core/cmd"

func main() {
	cmd.Execute()
}
