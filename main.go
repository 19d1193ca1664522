package main

import "github.com/teampulse/teampulse/cmd"

func main() {
	cmd.Execute()
}
