package main

import "github.com/pfennig-app/pfennig/cmd"

func main() {
	cmd.Execute()
}
