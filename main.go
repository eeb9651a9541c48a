package main

import "github.com/moyu-x/dupmover/cmd"

func main() {
	cmd.Execute()
}
