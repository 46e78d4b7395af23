package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ytget/tabplot/internal/fetch"
	"github.com/ytget/tabplot/internal/logging"
	"github.com/ytget/tabplot/internal/model"
	"github.com/ytget/tabplot/internal/platform"
)

type fetchFlags struct {
	retries int
	open    bool
}

func newFetchCmd(root *rootFlags) *cobra.Command {
	flags := &fetchFlags{}

	cmd := &cobra.Command{
		Use:   "fetch <dir> <url>",
		Short: "Download a file into a directory unless it is already there",
		Long: `Downloads <url> into <dir>, naming the file after the last segment of the
URL path. The directory is created when missing. When the file already
exists nothing is downloaded and the existing path is reported.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, root, flags, args[0], args[1])
		},
	}

	cmd.Flags().IntVar(&flags.retries, "retries", 2, "number of retries for failed requests")
	cmd.Flags().BoolVar(&flags.open, "open", false, "open the file with the default application afterwards")

	return cmd
}

func runFetch(cmd *cobra.Command, root *rootFlags, flags *fetchFlags, dir, rawURL string) error {
	log := logging.For("cli")
	out := cmd.OutOrStdout()

	name, err := fetch.FileNameFromURL(rawURL)
	if err != nil {
		fmt.Fprintln(out, color.RedString("✗")+" "+err.Error())
		return reported(err)
	}

	s, stop := startSpinner(cmd.ErrOrStderr(), out, "Fetching "+color.YellowString(name)+"...", root.verbose || root.debug)
	defer stop()

	svc := fetch.NewService(1, fetch.WithRetryMax(flags.retries))
	res, err := svc.DownloadFile(cmd.Context(), dir, rawURL, func(done, total int64) {
		s.Lock()
		s.Suffix = fmt.Sprintf(" Fetching %s... %s", color.YellowString(name), progressText(done, total))
		s.Unlock()
	})
	if err != nil {
		log.WithField("url", rawURL).WithError(err).Debug("fetch failed")
		s.FinalMSG = color.RedString("✗") + " Failed to fetch " + rawURL + ": " + err.Error() + "\n"
		return reported(err)
	}

	if res.Cached {
		s.FinalMSG = color.GreenString("✓") + " Already cached " + color.CyanString(res.Path) + "\n"
	} else {
		s.FinalMSG = color.GreenString("✓") + " Fetched " + color.CyanString(res.Path) +
			" (" + model.FormatFileSize(res.Bytes) + ")\n"
	}

	if flags.open {
		if err := platform.OpenFileWithDefaultApp(res.Path); err != nil {
			log.WithField("path", res.Path).WithError(err).Warn("failed to open file")
		}
	}
	return nil
}

// startSpinner starts a spinner on w unless verbose output is on. The
// returned func stops it and prints FinalMSG to out either way.
func startSpinner(w, out io.Writer, message string, verbose bool) (*spinner.Spinner, func()) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = " " + message
	_ = s.Color("cyan")

	if !verbose {
		s.Start()
	}

	return s, func() {
		msg := s.FinalMSG
		s.FinalMSG = ""
		if !verbose {
			s.Stop()
		}
		if msg != "" {
			fmt.Fprint(out, msg)
		}
	}
}

func progressText(done, total int64) string {
	if total <= 0 {
		return model.FormatFileSize(done)
	}
	return fmt.Sprintf("%s / %s", model.FormatFileSize(done), model.FormatFileSize(total))
}
