package annotate

import (
	"io"
	"strconv"

	"github.com/montanaflynn/stats"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
)

// ColumnSummary holds descriptive statistics of one numeric column.
type ColumnSummary struct {
	Name   string
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// Summarize computes per-column statistics in ColumnNames order. An empty
// record set yields an empty summary.
func Summarize(recs []*Record) ([]ColumnSummary, error) {
	if len(recs) == 0 {
		return nil, nil
	}
	out := make([]ColumnSummary, 0, len(ColumnNames))
	for _, name := range ColumnNames {
		col, _ := Column(recs, name)
		data := stats.Float64Data(col)
		s := ColumnSummary{Name: name}
		var err error
		if s.Mean, err = stats.Mean(data); err != nil {
			return nil, errors.Wrap(err, name)
		}
		if len(data) > 1 {
			if s.StdDev, err = stats.StdDevS(data); err != nil {
				return nil, errors.Wrap(err, name)
			}
		}
		if s.Min, err = stats.Min(data); err != nil {
			return nil, errors.Wrap(err, name)
		}
		if s.Max, err = stats.Max(data); err != nil {
			return nil, errors.Wrap(err, name)
		}
		out = append(out, s)
	}
	return out, nil
}

// PrintSummary renders the summary as a table.
func PrintSummary(w io.Writer, sum []ColumnSummary) {
	t := tablewriter.NewWriter(w)
	t.SetAutoFormatHeaders(false)
	t.SetHeader([]string{"column", "mean", "stddev", "min", "max"})
	t.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, s := range sum {
		t.Append([]string{s.Name, num(s.Mean), num(s.StdDev), num(s.Min), num(s.Max)})
	}
	t.Render()
}

func num(v float64) string { return strconv.FormatFloat(v, 'g', 6, 64) }
