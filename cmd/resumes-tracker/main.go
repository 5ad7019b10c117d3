package main

import "github.com/joseph-ayodele/resumes-tracker/internal/cli"

func main() {
	cli.Execute()
}
