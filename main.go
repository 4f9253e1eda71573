package main

import "app-inventory/cmd"

func main() {
	cmd.Execute()
}
