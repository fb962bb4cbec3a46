package main

import "assetup/cmd"

func main() {
	cmd.Execute()
}
