package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/amaumene/bingebuddy/internal/catalog"
	"github.com/amaumene/bingebuddy/internal/models"
	"github.com/spf13/cobra"
)

type browseFlags struct {
	include    map[catalog.Dimension]*[]string
	exclude    map[catalog.Dimension]*[]string
	minYear    string
	maxYear    string
	minRating  string
	minRuntime string
	maxRuntime string
	safeOnly   bool
	sort       string
	pages      int
}

func newBrowseCommand() *cobra.Command {
	f := &browseFlags{
		include: make(map[catalog.Dimension]*[]string),
		exclude: make(map[catalog.Dimension]*[]string),
	}

	cmd := &cobra.Command{
		Use:   "browse [query]",
		Short: "Print one ranked page of the catalog",
		Long: "Loads the default catalog, or search results when a query is given, " +
			"then filters and ranks it and prints the requested pages.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup()
			if err != nil {
				return err
			}
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			return runBrowse(cmd.Context(), a, query, f, cmd.OutOrStdout())
		},
	}

	for _, d := range catalog.Dimensions {
		f.include[d] = cmd.Flags().StringSlice(string(d), nil, fmt.Sprintf("only show titles with this %s", d))
		f.exclude[d] = cmd.Flags().StringSlice("exclude-"+string(d), nil, fmt.Sprintf("hide titles with this %s", d))
	}
	cmd.Flags().StringVar(&f.minYear, "min-year", "", "earliest release year")
	cmd.Flags().StringVar(&f.maxYear, "max-year", "", "latest release year")
	cmd.Flags().StringVar(&f.minRating, "min-rating", "", "minimum rating (0-10)")
	cmd.Flags().StringVar(&f.minRuntime, "min-runtime", "", "minimum runtime in minutes")
	cmd.Flags().StringVar(&f.maxRuntime, "max-runtime", "", "maximum runtime in minutes")
	cmd.Flags().BoolVar(&f.safeOnly, "safe", false, "hide adult titles")
	cmd.Flags().StringVar(&f.sort, "sort", "relevance", "relevance, rating or year")
	cmd.Flags().IntVar(&f.pages, "pages", 1, "number of pages to print")

	return cmd
}

func (f *browseFlags) criteria() catalog.FilterCriteria {
	c := catalog.FilterCriteria{
		MinYear:    catalog.ParseBound(f.minYear),
		MaxYear:    catalog.ParseBound(f.maxYear),
		MinRating:  catalog.ParseBound(f.minRating),
		MinRuntime: catalog.ParseBound(f.minRuntime),
		MaxRuntime: catalog.ParseBound(f.maxRuntime),
		SafeOnly:   f.safeOnly,
		SortKey:    catalog.ParseSortKey(f.sort),
	}
	for _, d := range catalog.Dimensions {
		c = c.WithFilter(d, catalog.DimensionFilter{Include: *f.include[d], Exclude: *f.exclude[d]})
	}
	return c
}

func runBrowse(ctx context.Context, a *app, query string, f *browseFlags, out io.Writer) error {
	var (
		records []models.MediaRecord
		err     error
	)
	if strings.TrimSpace(query) == "" {
		records, err = a.source.Default(ctx)
	} else {
		records, err = a.source.Search(ctx, query)
	}
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	records = a.settings.Blocklist.Apply(records)

	pages := max(f.pages, 1)
	w := catalog.NewWindow(a.settings.PageSize)
	for i := 1; i < pages; i++ {
		w.LoadMore()
	}
	page := catalog.Evaluate(records, f.criteria(), w)

	printPage(out, page, a.settings.Labels)
	return nil
}

func printPage(out io.Writer, page catalog.Page, labels catalog.Labels) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TITLE\tYEAR\tTYPE\tRATING\tGENRES\tSERVICES")
	for _, r := range page.Visible {
		rating := "-"
		if r.Rating != nil {
			rating = fmt.Sprintf("%.1f", *r.Rating)
		}
		genres := make([]string, 0, len(r.Genres))
		for _, g := range r.Genres {
			genres = append(genres, labels.Label(catalog.DimensionGenre, g))
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Title, r.Year, r.TypeTag, rating, strings.Join(genres, ", "), strings.Join(r.Services, ", "))
	}
	tw.Flush()

	more := ""
	if page.HasMore {
		more = " (more available)"
	}
	fmt.Fprintf(out, "\nShowing %d of %d%s\n", page.Shown, page.Total, more)
}
