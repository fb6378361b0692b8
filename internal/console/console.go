package console

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"iceberg_farmer/internal/utils"
)

var (
	bannerTitle = color.New(color.FgCyan, color.Bold)
	bannerSub   = color.New(color.FgHiBlack)
	waitColor   = color.New(color.FgYellow)
)

const clearLine = "\r\x1b[2K"

func PrintBanner(w io.Writer) {
	fmt.Fprintln(w)
	bannerTitle.Fprintln(w, "  ██╗ ██████╗███████╗██████╗ ███████╗██████╗  ██████╗ ")
	bannerTitle.Fprintln(w, "  ██║██╔════╝██╔════╝██╔══██╗██╔════╝██╔══██╗██╔════╝ ")
	bannerTitle.Fprintln(w, "  ██║██║     █████╗  ██████╔╝█████╗  ██████╔╝██║  ███╗")
	bannerTitle.Fprintln(w, "  ██║██║     ██╔══╝  ██╔══██╗██╔══╝  ██╔══██╗██║   ██║")
	bannerTitle.Fprintln(w, "  ██║╚██████╗███████╗██████╔╝███████╗██║  ██║╚██████╔╝")
	bannerTitle.Fprintln(w, "  ╚═╝ ╚═════╝╚══════╝╚═════╝ ╚══════╝╚═╝  ╚═╝ ╚═════╝ ")
	bannerSub.Fprintln(w, "  farming, tasks and ads. Press Ctrl+C to stop")
	fmt.Fprintln(w)
}

// AccountHeader renders the separator line logged before each account runs.
// It is plain text: the line is stored and streamed, not only printed.
func AccountHeader(index int, firstName, ip string) string {
	return fmt.Sprintf("========== Account %d | %s | ip: %s ==========", index+1, firstName, ip)
}

// Countdown redraws one waiting line per second, in place, then clears it.
func Countdown(ctx context.Context, w io.Writer, seconds int, sleep utils.SleepFunc) error {
	if sleep == nil {
		sleep = utils.Sleep
	}
	for i := seconds; i > 0; i-- {
		ts := time.Now().Format("15:04:05")
		fmt.Fprintf(w, "\r[%s] [*] %s", ts, waitColor.Sprintf("Waiting %d seconds to continue...", i))
		if err := sleep(ctx, time.Second); err != nil {
			fmt.Fprint(w, clearLine)
			return err
		}
	}
	fmt.Fprint(w, clearLine)
	return nil
}
