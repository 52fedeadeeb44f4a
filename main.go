package main

import "github.com/stoneriver/portal/cmd"

func main() {
	cmd.Execute()
}
