package main

import "github.com/karnival/limonite/cmd"

func main() {
	cmd.Execute()
}
