package main

import "rehnuma-chat/internal/cli"

func main() {
	cli.Execute()
}
