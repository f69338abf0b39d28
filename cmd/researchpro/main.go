// Package main implements the researchpro CLI tool.
// It provisions, verifies, and tears down ResearchPro agent deployments
// on Google Cloud.
package main

import "github.com/Vishnu4712/ResearchPro/cmd/researchpro/cmd"

func main() {
	cmd.Execute()
}
