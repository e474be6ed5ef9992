package main

import "github.com/golangdaddy/apexdrift/cmd"

func main() {
	cmd.Execute()
}
