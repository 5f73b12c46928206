package main

import "tft-atlas/cmd"

func main() {
	cmd.Execute()
}
