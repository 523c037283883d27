package main

import "amfkit/cmd/amfctl/cmd"

func main() {
	cmd.Execute()
}
