package main

import "github.com/dmitrijs2005/fleetsync/internal/agent"

func main() {
	agent.Execute()
}
