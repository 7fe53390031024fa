package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/sandeepkv93/agencyd/internal/journal"
	"github.com/sandeepkv93/agencyd/internal/model"
	"github.com/sandeepkv93/agencyd/internal/seed"
)

const stampLayout = "2006-01-02 15:04:05"

var (
	urgentColor = color.New(color.FgRed, color.Bold)
	infoColor   = color.New(color.FgCyan)
	mutedColor  = color.New(color.Faint)
	warnColor   = color.New(color.FgYellow)
)

func printNotification(w io.Writer, n model.Notification) {
	printLine(w, n.CreatedAt, n.Urgent, n.Title, n.Message)
}

func printEntry(w io.Writer, e journal.Entry) {
	printLine(w, e.CreatedAt, e.Urgent, e.Title, e.Message)
}

func printLine(w io.Writer, at time.Time, urgent bool, title, message string) {
	tag, c := "info  ", infoColor
	if urgent {
		tag, c = "URGENT", urgentColor
	}
	mutedColor.Fprint(w, at.Local().Format(stampLayout))
	fmt.Fprint(w, " ")
	c.Fprint(w, tag)
	fmt.Fprintf(w, " %s: %s\n", title, message)
}

func printWarnings(w io.Writer, warnings []seed.Warning) {
	for _, warn := range warnings {
		warnColor.Fprintf(w, "seed warning: %s\n", warn)
	}
}
