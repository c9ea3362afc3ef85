package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/archivekeeper/internal/ead"
	"github.com/dmitrijs2005/archivekeeper/internal/models"
)

const (
	outputAuto = "auto"
	outputJSON = "json"
	outputText = "text"
)

func (a *App) jsonOutput() bool {
	switch a.output {
	case outputJSON:
		return true
	case outputText:
		return false
	default:
		return !interactive(a.out)
	}
}

// emit writes v as indented JSON, or calls text when the output is meant
// for a person.
func (a *App) emit(v any, text func(w *tabwriter.Writer)) error {
	if a.jsonOutput() || text == nil {
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	text(tw)
	return tw.Flush()
}

func recordRows(recs []ead.Record) func(*tabwriter.Writer) {
	return func(w *tabwriter.Writer) {
		fmt.Fprintln(w, "ID\tLEVEL\tDATE\tOBJECTS\tTITLE")
		for _, r := range recs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
				r.Control.RecordID, r.Description.Level.Label(), unitDateText(r), r.DigitalObjectCount, r.Control.FileDesc.Title)
		}
	}
}

func recordDetail(r ead.Record) func(*tabwriter.Writer) {
	return func(w *tabwriter.Writer) {
		fmt.Fprintf(w, "Title:\t%s\n", r.Control.FileDesc.Title)
		fmt.Fprintf(w, "ID:\t%s\n", r.Control.RecordID)
		fmt.Fprintf(w, "Level:\t%s\n", r.Description.Level.Label())
		if d := unitDateText(r); d != "" {
			fmt.Fprintf(w, "Date:\t%s\n", d)
		}
		if r.Description.DID.Origination != "" {
			fmt.Fprintf(w, "Creator:\t%s\n", r.Description.DID.Origination)
		}
		if r.Description.DID.Repository != "" {
			fmt.Fprintf(w, "Repository:\t%s\n", r.Description.DID.Repository)
		}
		fmt.Fprintf(w, "Digital objects:\t%d\n", r.DigitalObjectCount)
		for _, p := range r.Path {
			fmt.Fprintf(w, "Path:\t%s\n", p.Label)
		}
		for _, res := range r.Description.Restrictions {
			texts := make([]string, 0, len(res.Statements))
			for _, st := range res.Statements {
				texts = append(texts, st.Text)
			}
			fmt.Fprintf(w, "%s:\t%s\n", res.Head, strings.Join(texts, "; "))
		}
		if r.Description.DID.Abstract != "" {
			fmt.Fprintf(w, "\n%s\n", r.Description.DID.Abstract)
		}
	}
}

func unitDateText(r ead.Record) string {
	if r.Description.DID.UnitDate == nil {
		return ""
	}
	return r.Description.DID.UnitDate.Text
}

func bookmarkRows(list []models.Bookmark) func(*tabwriter.Writer) {
	return func(w *tabwriter.Writer) {
		fmt.Fprintln(w, "ID\tRECORD\tCATEGORY\tTAGS\tTITLE")
		for _, b := range list {
			title := b.Title
			if b.CustomName != "" {
				title = b.CustomName
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", b.ID, b.RecordID, b.CategoryID, len(b.Tags), title)
		}
	}
}

func categoryRows(list []models.Category) func(*tabwriter.Writer) {
	return func(w *tabwriter.Writer) {
		fmt.Fprintln(w, "ORDER\tID\tNAME")
		for _, c := range list {
			fmt.Fprintf(w, "%d\t%s\t%s\n", c.Order, c.ID, c.Name)
		}
	}
}

func tagRows(list []models.Tag) func(*tabwriter.Writer) {
	return func(w *tabwriter.Writer) {
		fmt.Fprintln(w, "ID\tNAME\tLABEL")
		for _, t := range list {
			fmt.Fprintf(w, "%s\t%s\t%s\n", t.ID, t.Name, t.Label)
		}
	}
}
