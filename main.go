package main

import "github.com/Bridgeless-Project/ton-kit/cmd"

func main() {
	cmd.Execute()
}
