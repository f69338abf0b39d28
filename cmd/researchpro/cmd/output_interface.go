// Package cmd implements the CLI commands for the researchpro tool.
package cmd

import "github.com/Vishnu4712/ResearchPro/internal/output"

// OutputInterface defines the interface for output operations to enable dependency injection and testing.
type OutputInterface interface {
	Infof(format string, a ...any)
	Errorf(format string, a ...any)
	Successf(format string, a ...any)
	Warningf(format string, a ...any)
	Step(step, total int, message string)
	Table(headers []string, rows [][]string)
	Blank()
	Box(text string)
	Bold(text string) string
	StatusBadge(status string) string
	KeyValue(key, value string)
	Confirm(prompt string) bool
	Prompt(prompt string) string
	PromptRequired(prompt string) string
	PromptSecret(prompt string) string
}

// outputWrapper wraps the global output package functions to implement OutputInterface.
type outputWrapper struct{}

// NewOutputWrapper creates a new output wrapper that implements OutputInterface.
func NewOutputWrapper() OutputInterface {
	return &outputWrapper{}
}

func (o *outputWrapper) Infof(format string, a ...any) {
	output.Infof(format, a...)
}

func (o *outputWrapper) Errorf(format string, a ...any) {
	output.Errorf(format, a...)
}

func (o *outputWrapper) Successf(format string, a ...any) {
	output.Successf(format, a...)
}

func (o *outputWrapper) Warningf(format string, a ...any) {
	output.Warningf(format, a...)
}

func (o *outputWrapper) Step(step, total int, message string) {
	output.Step(step, total, message)
}

func (o *outputWrapper) Table(headers []string, rows [][]string) {
	output.Table(headers, rows)
}

func (o *outputWrapper) Blank() {
	output.Blank()
}

func (o *outputWrapper) Box(text string) {
	output.Box(text)
}

func (o *outputWrapper) Bold(text string) string {
	return output.Bold(text)
}

func (o *outputWrapper) StatusBadge(status string) string {
	return output.StatusBadge(status)
}

func (o *outputWrapper) KeyValue(key, value string) {
	output.KeyValue(key, value)
}

func (o *outputWrapper) Confirm(prompt string) bool {
	return output.Confirm(prompt)
}

func (o *outputWrapper) Prompt(prompt string) string {
	return output.Prompt(prompt)
}

func (o *outputWrapper) PromptRequired(prompt string) string {
	return output.PromptRequired(prompt)
}

func (o *outputWrapper) PromptSecret(prompt string) string {
	return output.PromptSecret(prompt)
}
