package cli

import "github.com/collegeops/collegeops-cli/content"

const (
	// Standard colors
	Red     = "\033[31m"
	Green   = "\033[32m"
	Yellow  = "\033[33m"
	Blue    = "\033[34m"
	Magenta = "\033[35m"
	Cyan    = "\033[36m"
	Gray    = "\033[90m" // Bright black, often appears as gray

	ResetColor = "\033[0m" // Reset to default color
)

var priorityColors = map[content.PriorityType]string{
	content.PriorityLow:    Green,
	content.PriorityMedium: Yellow,
	content.PriorityHigh:   Red,
}

func colourPriority(p content.PriorityType) string {
	if colour, ok := priorityColors[p]; ok {
		return colour + string(p) + ResetColor
	}
	return string(p)
}
