package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/inburst/prhub/config"
	"github.com/inburst/prhub/datasource"
	"github.com/inburst/prhub/table"
	"github.com/olekukonko/tablewriter"
)

// runCheck lists the active pull requests once, proving the credentials and
// scope in the configuration work.
func runCheck(ctx context.Context, c *config.Config, provider datasource.Provider, out io.Writer) error {
	ds, err := datasource.New(c, provider, nil)
	if err != nil {
		return err
	}
	ds.SetCacheFilePath("")

	pulls, err := ds.ListPulls(ctx)
	if err != nil {
		return err
	}
	layout := table.NewLayout(table.BreakpointsFromConfig(c.Breakpoints))
	pulls, err = layout.SortByKey(table.ColumnID, table.Ascending, pulls)
	if err != nil {
		return err
	}
	counts, err := ds.CommentCounts(ctx, pulls)
	if err != nil {
		fmt.Fprintf(out, "some comment counts are missing: %v\n", err)
	}

	fmt.Fprintf(out, "%s: %d active pull requests\n", provider.Name(), len(pulls))
	w := tablewriter.NewWriter(out)
	w.SetHeader([]string{"ID", "Created By", "Title", "Repository", "Status", "Comments"})
	for _, pr := range pulls {
		comments := "?"
		if count, ok := counts[pr.CacheKey()]; ok {
			comments = count.String()
		}
		w.Append([]string{
			strconv.Itoa(pr.ID),
			pr.CreatedBy.DisplayName,
			pr.Title,
			pr.Repository.Name,
			pr.MergeStatus.Label(),
			comments,
		})
	}
	w.Render()
	return nil
}
