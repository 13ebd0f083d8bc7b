package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/rushteam/dinekit/core"
	"github.com/rushteam/dinekit/engine"
)

const emptyMessage = "No recommendations found."

func renderResult(w io.Writer, res *engine.Result, mode core.ServiceMode) error {
	if res.Empty() {
		_, err := fmt.Fprintln(w, emptyMessage)
		return err
	}
	table := tablewriter.NewWriter(w)
	table.Header("#", "ID", "Name", "Cuisines", "Area", "Cost", "Rating", "Score")
	for i, rec := range res.Recommendations {
		r := rec.Restaurant
		if err := table.Append([]string{
			strconv.Itoa(i + 1),
			r.ID,
			r.Name,
			r.CuisineText(),
			r.Area,
			formatFloat(r.AverageCost),
			formatRating(r.RatingFor(mode)),
			strconv.FormatFloat(rec.Score, 'f', 4, 64),
		}); err != nil {
			return err
		}
	}
	return table.Render()
}

func renderHistory(w io.Writer, history []engine.Rated) error {
	if len(history) == 0 {
		_, err := fmt.Fprintln(w, "No ratings found.")
		return err
	}
	table := tablewriter.NewWriter(w)
	table.Header("ID", "Name", "Cuisines", "Rating", "Cost")
	for _, h := range history {
		if err := table.Append([]string{
			h.Restaurant.ID,
			h.Restaurant.Name,
			strings.Join(h.Restaurant.Cuisines, ", "),
			formatFloat(h.Rating),
			formatFloat(h.Cost),
		}); err != nil {
			return err
		}
	}
	return table.Render()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatRating(r core.Rating) string {
	if !r.Rated {
		return "-"
	}
	return formatFloat(r.Value)
}
