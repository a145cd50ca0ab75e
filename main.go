package main

import "github.com/gnud-gnaoh/github-most-starred/cmd"

func main() {
	cmd.Execute()
}
