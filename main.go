package main

import "github.com/Alijeyrad/ghasedak/cmd"

func main() {
	cmd.Execute()
}
