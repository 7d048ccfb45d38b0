package main

import "github.com/KaramelBytes/rosterlens/cmd"

func main() {
	cmd.Execute()
}
