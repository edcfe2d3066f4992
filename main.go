package main

import "github.com/jsphweid/chartband/cmd"

func main() {
	cmd.Execute()
}
