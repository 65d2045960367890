/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"github.com/ssargent/polyparser/cmd/polyparser/cmd"
	"github.com/ssargent/polyparser/pkg/di"
)

func main() {
	container := di.NewContainer()
	cmd.SetContainer(container)

	cmd.Execute()
}
