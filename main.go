package main

import "github.com/AIAA2205L02ProjectAmadeus/key-cut/cmd"

func main() {
	cmd.Execute()
}
