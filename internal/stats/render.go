package stats

import (
	"fmt"
	"io"
	"time"

	"github.com/artemgv/ritmo/internal/model"
)

// RenderSummary prints an overall summary for the report.
func RenderSummary(w io.Writer, r Report) error {
	if len(r.Sessions) == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	var totalWPM, bestWPM float64
	var totalWords int
	var totalMs int64
	for _, s := range r.Sessions {
		wpm := SessionWPM(s.WordsRead, s.DurationMs)
		totalWPM += wpm
		if wpm > bestWPM {
			bestWPM = wpm
		}
		totalWords += s.WordsRead
		totalMs += s.DurationMs
	}
	count := float64(len(r.Sessions))
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Sessions: %d\n", len(r.Sessions)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Words read: %d\n", totalWords); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Time read: %s\n", formatDuration(totalMs)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg WPM: %.2f\n", totalWPM/count); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Best WPM: %.2f\n", bestWPM); err != nil {
		return err
	}
	if r.Predictions.TotalWords > 0 {
		if _, err := fmt.Fprintf(w, "Recall: %d%% exact, %d%% avg score (%d words)\n",
			r.Recall.ExactPercent, r.Recall.AvgScorePercent, r.Predictions.TotalWords); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderSessionTable prints recent sessions as a table, newest last.
func RenderSessionTable(w io.Writer, sessions []model.SessionAggregate) error {
	if len(sessions) == 0 {
		return nil
	}
	headers := []string{"Ended", "Target WPM", "Actual WPM", "Words", "Duration"}
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, []string{
			s.EndedAt.Local().Format("2006-01-02 15:04"),
			fmt.Sprintf("%d", s.TargetWPM),
			fmt.Sprintf("%.1f", SessionWPM(s.WordsRead, s.DurationMs)),
			fmt.Sprintf("%d", s.WordsRead),
			formatDuration(s.DurationMs),
		})
	}
	if _, err := fmt.Fprintln(w, "Sessions"); err != nil {
		return err
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true, 4: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderCurves prints speed curves for target and achieved WPM.
func RenderCurves(w io.Writer, sessions []model.SessionAggregate, window int) error {
	return RenderCurvesWithSize(w, sessions, window, 0, 10, false)
}

// RenderCurvesWithSize prints speed curves sized to a given total width.
func RenderCurvesWithSize(w io.Writer, sessions []model.SessionAggregate, window, totalWidth, height int, useColor bool) error {
	if len(sessions) == 0 {
		return nil
	}
	actual := make([]float64, len(sessions))
	target := make([]float64, len(sessions))
	for i, s := range sessions {
		actual[i] = SessionWPM(s.WordsRead, s.DurationMs)
		target[i] = float64(s.TargetWPM)
	}
	actual = MovingAverage(actual, window)

	width := 0
	if totalWidth > 0 {
		width = PlotWidthFor(totalWidth)
	}
	return PlotSeriesWithColor(w, "Speed Curves", []Series{
		{Name: "Actual WPM", Values: actual},
		{Name: "Target WPM", Values: target},
	}, width, height, useColor)
}

func formatDuration(ms int64) string {
	d := time.Duration(ms) * time.Millisecond
	d = d.Round(time.Second)
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second
	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm%02ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
