package main

import "github.com/kozaktomas/face-console/cmd"

func main() {
	cmd.Execute()
}
