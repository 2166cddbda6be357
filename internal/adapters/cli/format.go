package cli

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/example/ballot/internal/models"
)

// classColor paints an election classification.
func classColor(class string) string {
	switch class {
	case models.ClassActive:
		return color.New(color.FgGreen).Sprint(class)
	case models.ClassUpcoming:
		return color.New(color.FgCyan).Sprint(class)
	case models.ClassCompleted:
		return color.New(color.FgBlue).Sprint(class)
	case models.ClassCancelled:
		return color.New(color.FgRed).Sprint(class)
	default:
		return color.New(color.FgYellow).Sprint(class)
	}
}

// percent renders a share with one decimal.
func percent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

// when renders an absolute time with a relative hint.
func when(t time.Time, now time.Time) string {
	return fmt.Sprintf("%s (%s)", t.Local().Format("2006-01-02 15:04"), humanize.RelTime(t, now, "ago", "from now"))
}
