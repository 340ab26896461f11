package main

import "github.com/iksnae/session-replay/cmd"

func main() {
	cmd.Execute()
}
