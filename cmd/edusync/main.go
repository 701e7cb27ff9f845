package main

import "github.com/krishpatel1827/EduSync/internal/cli"

func main() {
	cli.Execute()
}
