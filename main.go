package main

import "qa-review-system.com/qa-review-system/cmd"

func main() {
	cmd.Execute()
}
