// Command fortyfive-cli searches the Discogs catalog from the console.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/llehouerou/fortyfive/internal/app"
	"github.com/llehouerou/fortyfive/internal/config"
	"github.com/llehouerou/fortyfive/internal/discogs"
	"github.com/llehouerou/fortyfive/internal/logging"
	"github.com/llehouerou/fortyfive/internal/tags"
	"github.com/llehouerou/fortyfive/internal/tracktime"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := newRootCmd(newClient).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// catalogFunc opens the catalog a command talks to. It runs only once the
// arguments are valid.
type catalogFunc func() (app.Catalog, error)

func newRootCmd(catalog catalogFunc) *cobra.Command {
	root := &cobra.Command{
		Use:           "fortyfive-cli",
		Short:         "Query the Discogs catalog and read file tags",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(cmdSearch(catalog), cmdRelease(catalog), cmdTags())
	return root
}

// newClient builds a catalog client from the user configuration. Logs go
// to the configured file, or nowhere.
func newClient() (app.Catalog, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := zap.NewNop()
	if l, _, lerr := logging.New(cfg.LogPath(), cfg.Log.Level); lerr == nil {
		logger = l.Named("cli")
	}
	return discogs.NewClient(discogs.Options{
		BaseURL:     cfg.Discogs.BaseURL,
		UserAgent:   cfg.Discogs.UserAgent,
		Token:       cfg.Discogs.Token,
		Timeout:     cfg.Discogs.Timeout,
		MinInterval: cfg.Discogs.MinInterval,
		PerPage:     cfg.Discogs.PerPage,
		Logger:      logger,
	}), nil
}

type searchOptions struct {
	typ    discogs.ResultType
	page   int
	limit  int
	single bool
	query  string
}

func cmdSearch(catalog catalogFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search releases, artists or masters",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := parseSearch(cmd.Flags(), args)
			if err != nil {
				return err
			}
			c, err := catalog()
			if err != nil {
				return err
			}
			return runSearch(cmd.Context(), c, opts, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringP("type", "t", string(discogs.TypeRelease), "record type: release, artist or master")
	cmd.Flags().IntP("page", "p", 1, "page number")
	cmd.Flags().IntP("limit", "l", 5, "records printed")
	cmd.Flags().Bool("45", false, `keep only 7" 45 RPM releases`)
	return cmd
}

func parseSearch(flags *pflag.FlagSet, args []string) (searchOptions, error) {
	var (
		opts searchOptions
		typ  string
		err  error
	)
	if typ, err = flags.GetString("type"); err != nil {
		return opts, err
	}
	if opts.page, err = flags.GetInt("page"); err != nil {
		return opts, err
	}
	if opts.limit, err = flags.GetInt("limit"); err != nil {
		return opts, err
	}
	if opts.single, err = flags.GetBool("45"); err != nil {
		return opts, err
	}
	opts.query = strings.TrimSpace(strings.Join(args, " "))

	if opts.typ, err = discogs.ParseResultType(typ); err != nil {
		return searchOptions{}, err
	}
	if opts.query == "" {
		return searchOptions{}, errors.New("empty query")
	}
	if opts.page < 1 {
		return searchOptions{}, fmt.Errorf("page must be at least 1, got %d", opts.page)
	}
	if opts.limit < 1 {
		return searchOptions{}, fmt.Errorf("limit must be at least 1, got %d", opts.limit)
	}
	if opts.single && opts.typ != discogs.TypeRelease {
		return searchOptions{}, errors.New("--45 only applies to releases")
	}
	return opts, nil
}

func runSearch(ctx context.Context, c app.Catalog, opts searchOptions, out io.Writer) error {
	page, err := c.Search(ctx, opts.query, opts.typ, opts.page)
	if err != nil {
		return fmt.Errorf("search %q: %w", opts.query, err)
	}

	fmt.Fprintf(out, "Page %d of %d, %s records\n\n", page.Number, page.Pages, humanize.Comma(int64(page.Items)))
	if opts.single {
		releases := discogs.FilterReleases(page.Results, opts.limit)
		for _, r := range releases {
			printRelease(out, r)
		}
		if len(releases) == 0 {
			fmt.Fprintln(out, "No results found.")
		}
		return nil
	}

	results := page.Results[:min(opts.limit, len(page.Results))]
	for _, r := range results {
		printResult(out, r)
	}
	if len(results) == 0 {
		fmt.Fprintln(out, "No results found.")
	}
	return nil
}

func printResult(out io.Writer, r discogs.Result) {
	if r.Type == discogs.TypeArtist || r.Release == nil {
		fmt.Fprintf(out, "[%s %d] %s\n", r.Type, r.ID, r.Title)
		return
	}
	fmt.Fprintf(out, "[%s %d] ", r.Type, r.ID)
	printRelease(out, *r.Release)
}

func printRelease(out io.Writer, r discogs.Release) {
	fmt.Fprintln(out, clip(r.Display()))
	if labels := r.LabelNames(); labels != "" {
		fmt.Fprintf(out, "    %s\n", clip(labels))
	}
	if f := r.FormatSummary(); f != "" {
		fmt.Fprintf(out, "    %s\n", clip(f))
	}
}

// clip shortens s to the terminal width when printing to one.
func clip(s string) string {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 4 || len([]rune(s)) <= w-4 {
		return s
	}
	return string([]rune(s)[:w-5]) + "…"
}

func cmdRelease(catalog catalogFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "release <id>",
		Short: "Show a release with its tracklist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var id int
			if _, err := fmt.Sscan(args[0], &id); err != nil || id <= 0 {
				return fmt.Errorf("invalid release id %q", args[0])
			}
			c, err := catalog()
			if err != nil {
				return err
			}
			r, err := c.GetRelease(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("release %d: %w", id, err)
			}
			writeRelease(cmd.OutOrStdout(), r)
			return nil
		},
	}
}

func writeRelease(out io.Writer, r *discogs.Release) {
	orNA := func(s string) string {
		if s == "" {
			return tracktime.NotAvailable
		}
		return s
	}
	durations := make([]string, 0, len(r.Tracklist))
	for _, t := range r.Tracklist {
		durations = append(durations, t.Duration)
	}

	fmt.Fprintln(out, r.Display())
	fmt.Fprintf(out, "Labels:  %s\n", orNA(r.LabelNames()))
	fmt.Fprintf(out, "Country: %s\n", orNA(r.Country))
	fmt.Fprintf(out, "Format:  %s\n", orNA(r.FormatSummary()))
	fmt.Fprintf(out, "Genres:  %s\n", orNA(strings.Join(r.Genres, ", ")))
	fmt.Fprintf(out, "Styles:  %s\n", orNA(strings.Join(r.Styles, ", ")))
	fmt.Fprintf(out, "Total:   %s\n", tracktime.Summary(durations))
	for _, t := range r.Tracklist {
		fmt.Fprintf(out, "  %-4s %-40s %s\n", t.Position, t.Title, t.Duration)
	}
}

func cmdTags() *cobra.Command {
	return &cobra.Command{
		Use:   "tags <file>",
		Short: "Print the tags of a music file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTags(args[0], cmd.OutOrStdout())
		},
	}
}

func runTags(path string, out io.Writer) error {
	t, err := tags.Read(path)
	if err != nil {
		return fmt.Errorf("read tags: %w", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "File:   %s (%s)\n", path, humanize.Bytes(uint64(info.Size())))
	fmt.Fprintf(out, "Artist: %s\n", t.Artist)
	fmt.Fprintf(out, "Title:  %s\n", t.Title)
	fmt.Fprintf(out, "Album:  %s\n", t.Album)
	return nil
}
