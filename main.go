package main

import "github.com/iksnae/studymind/cmd"

func main() {
	cmd.Execute()
}
