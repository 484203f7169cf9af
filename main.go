package main

import "github.com/notargets/gosoliton/cmd"

func main() {
	cmd.Execute()
}
