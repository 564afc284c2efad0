package main

import "github.com/jwhitt/romannotate/cmd"

func main() {
	cmd.Execute()
}
