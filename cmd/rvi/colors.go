package main

import (
	"github.com/logrusorgru/aurora/v4"
)

func colorizeError(message string) string {
	return aurora.Colorize(message, aurora.RedFg|aurora.BrightFg|aurora.BoldFm).String()
}

func colorizeInfo(message string) string {
	return aurora.Colorize(message, aurora.YellowFg|aurora.BrightFg).String()
}
