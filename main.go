package main

import "github.com/zjrosen/outbreak/cmd"

func main() {
	cmd.Execute()
}
