package main

import "github.com/MrSnakeDoc/apihub/internal/cli"

func main() {
	cli.Execute()
}
