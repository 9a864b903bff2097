package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Nixie-Tech-LLC/marquee/internal/model"
	"github.com/Nixie-Tech-LLC/marquee/internal/scheduling"
)

var (
	previewFile string
	previewFrom string
	previewDays int
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Project a schedule described in a JSON file over the coming days",
	Long: `Reads a schedule in the same JSON shape the admin API accepts ("-" reads stdin)
and prints, for each day, whether it would run and at what hours. No database is needed.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().StringVarP(&previewFile, "file", "f", "-", "schedule JSON file")
	previewCmd.Flags().StringVar(&previewFrom, "from", "", "first day, YYYY-MM-DD (default today)")
	previewCmd.Flags().IntVar(&previewDays, "days", 7, "number of days to project")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	in, err := readScheduleInput(cmd.InOrStdin(), previewFile)
	if err != nil {
		return err
	}

	from := model.DateOf(time.Now())
	if previewFrom != "" {
		if from, err = model.ParseDate(previewFrom); err != nil {
			return fmt.Errorf("parse --from: %w", err)
		}
	}

	draft, err := scheduling.NewPipeline(nil, nil).Prepare(0, in, nil)
	if err != nil {
		return err
	}
	days, err := scheduling.Preview(draft, from, previewDays)
	if err != nil {
		return err
	}
	return writePreview(cmd.OutOrStdout(), draft, days)
}

func readScheduleInput(stdin io.Reader, path string) (scheduling.ScheduleInput, error) {
	var in scheduling.ScheduleInput
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return in, err
		}
		defer f.Close()
		r = f
	}
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return in, fmt.Errorf("decode schedule: %w", err)
	}
	return in, nil
}

func writePreview(w io.Writer, s model.Schedule, days []scheduling.DayPreview) error {
	if _, err := fmt.Fprintf(w, "%s  (%s, %s)\n", s.Name, scheduling.DateRangeLabel(s), scheduling.TimeRangeLabel(s)); err != nil {
		return err
	}
	for _, d := range days {
		hours := "-"
		if d.Active {
			hours = d.TimeRange
		}
		if _, err := fmt.Fprintf(w, "%s  %-9s  %s\n", d.Date, time.Weekday(d.Weekday), hours); err != nil {
			return err
		}
	}
	return nil
}
