package main

import "github.com/masmgr/sisync/cmd"

func main() {
	cmd.Run()
}
