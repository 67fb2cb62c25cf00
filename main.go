package main

import "bioskop-finder-cli/cmd"

func main() {
	cmd.Execute()
}
