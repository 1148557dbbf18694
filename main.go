package main

import "github.com/inburst/prhub/cmd"

func main() {
	cmd.Execute()
}
