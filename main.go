package main

import "cashbox/cmd"

func main() {
	cmd.Execute()
}
