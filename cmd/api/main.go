package main

import "github.com/justsurfingit/job-board/internal/commands"

func main() {
	commands.Execute()
}
