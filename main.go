package main

import "example.com/volunteerhub/cmd"

func main() {
	cmd.Execute()
}
