package main

import "github.com/mcoot/userportal/internal/cli"

func main() {
	cli.Execute()
}
