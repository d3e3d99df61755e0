package main

import "github.com/saravenpi/jamroom/internal/cli"

func main() {
	cli.Execute()
}
