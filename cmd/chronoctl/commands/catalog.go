package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pkordes/chronotours/internal/domain"
)

func periodsCmd(c *cli) *cobra.Command {
	var (
		featured bool
		timeline bool
		search   string
	)
	cmd := &cobra.Command{
		Use:   "periods",
		Short: "List time periods",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var periods []domain.TimePeriod
			switch {
			case search != "":
				periods = c.app.Catalog.SearchTimePeriods(search)
			case featured:
				periods = c.app.Catalog.GetFeaturedTimePeriods()
			case timeline:
				periods = c.app.Catalog.TimelineTimePeriods()
			default:
				periods = c.app.Catalog.State().TimePeriods
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tERA")
			for _, p := range periods {
				fmt.Fprintf(w, "%s\t%s\t%s - %s\n", p.ID, p.Name, domain.FormatYear(p.StartYear), domain.FormatYear(p.EndYear))
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&featured, "featured", false, "only featured periods")
	cmd.Flags().BoolVar(&timeline, "timeline", false, "order by start year")
	cmd.Flags().StringVar(&search, "search", "", "match name or description")
	cmd.MarkFlagsMutuallyExclusive("featured", "timeline", "search")
	return cmd
}

func toursCmd(c *cli) *cobra.Command {
	var period string
	cmd := &cobra.Command{
		Use:   "tours",
		Short: "List tours, optionally for one time period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.app.Catalog.FetchTours(cmd.Context(), period); err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tDAYS\tPRICE\tGROUP")
			for _, t := range c.app.Catalog.State().Tours {
				fmt.Fprintf(w, "%s\t%s\t%d\t%.2f\t%d\n", t.ID, t.Title, t.Duration, t.DiscountedPrice(), t.MaxGroupSize)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&period, "period", "", "time period id")
	return cmd
}
