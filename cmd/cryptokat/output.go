package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/TheMichaelB/cryptokat/internal/models"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow)
	infoColor    = color.New(color.FgCyan)
	headingColor = color.New(color.Bold, color.Underline)

	titleCaser = cases.Title(language.English)
)

func printSuccess(format string, args ...interface{}) {
	successColor.Fprintf(os.Stdout, format+"\n", args...)
}

func printError(format string, args ...interface{}) {
	errorColor.Fprintf(os.Stderr, format+"\n", args...)
}

func printWarning(format string, args ...interface{}) {
	warningColor.Fprintf(os.Stderr, format+"\n", args...)
}

func printInfo(format string, args ...interface{}) {
	infoColor.Fprintf(os.Stdout, format+"\n", args...)
}

func printHeading(title string) {
	headingColor.Fprintln(os.Stdout, titleCaser.String(title))
}

func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		printError("encode json: %v", err)
	}
}

func statusLabel(status models.TestStatus) string {
	switch status {
	case models.StatusPass:
		return successColor.Sprint(string(status))
	case models.StatusFail:
		return errorColor.Sprint(string(status))
	default:
		return warningColor.Sprint(string(status))
	}
}

func printReport(report *models.RunReport) {
	printHeading("self-test results")
	for _, res := range report.Results {
		line := fmt.Sprintf("  %-4s  %-22s %-15s", statusLabel(res.Status), res.Alg, res.Kind)
		if res.Status == models.StatusPass {
			line += " " + formatDuration(res.Duration)
		}
		fmt.Println(line)
		if res.Status == models.StatusFail {
			fmt.Printf("        %s: %s\n", res.Op, res.Error)
		}
	}
	fmt.Println()
	fmt.Printf("Run %s: %d passed, %d failed, %d skipped in %s\n",
		report.ID,
		report.Count(models.StatusPass),
		report.Count(models.StatusFail),
		report.Count(models.StatusSkip),
		formatDuration(report.Duration))
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return d.Round(time.Microsecond).String()
	case d < time.Second:
		return d.Round(10 * time.Microsecond).String()
	default:
		return d.Round(time.Millisecond).String()
	}
}
