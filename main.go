package main

import "github.com/ramizpolic/islamicai/cmd"

func main() {
	cmd.Execute()
}
