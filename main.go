package main

import "github.com/theirongolddev/nexus/cmd"

func main() {
	cmd.Execute()
}
