package main

import "inkwell/internal/cmd"

func main() {
	cmd.Run()
}
