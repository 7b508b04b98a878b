package main

import "github.com/lmgveerhoek/rescan/cmd"

func main() {
	cmd.Execute()
}
