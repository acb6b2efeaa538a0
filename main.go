package main

import "github.com/notargets/tetmsh/cmd"

func main() {
	cmd.Execute()
}
