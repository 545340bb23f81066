package main

import "github.com/KaramelBytes/pageviews-cli/cmd"

func main() {
	cmd.Execute()
}
