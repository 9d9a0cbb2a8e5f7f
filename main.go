package main

import "github.com/iksnae/chatgpt-export/cmd"

func main() {
	cmd.Execute()
}
