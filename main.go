/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/cloudscan/aws-resource-mapper/cmd"

func main() {
	cmd.Execute()
}
