package main

import "github.com/lexdesk/legal-assistant/internal/cli"

func main() {
	cli.Execute()
}
