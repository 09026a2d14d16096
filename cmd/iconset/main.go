package main

import "github.com/tgartner/iconset/cmd"

func main() {
	cmd.Execute()
}
