package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hoanghai1803/newslens/internal/analysis"
	"github.com/hoanghai1803/newslens/internal/app"
	"github.com/hoanghai1803/newslens/internal/config"
	"github.com/hoanghai1803/newslens/internal/feeds"
	"github.com/hoanghai1803/newslens/internal/models"
)

// feedFlags selects the articles a trending command runs over.
type feedFlags struct {
	feedURL  string
	region   string
	category string
	limit    int
}

func (f *feedFlags) register(cmd *cobra.Command, defaultLimit int) {
	cmd.Flags().StringVar(&f.feedURL, "feed", "", "RSS or Atom feed URL (default: configured sources)")
	cmd.Flags().StringVar(&f.region, "region", "", "feed region (default: news.default_region)")
	cmd.Flags().StringVar(&f.category, "category", "", "feed category (default: news.default_category)")
	cmd.Flags().IntVar(&f.limit, "limit", defaultLimit, "number of results")
}

// articles fetches headlines from --feed when given, otherwise from the
// configured sources.
func (f *feedFlags) articles(ctx context.Context, cfg *config.Config) ([]models.Article, error) {
	region := models.Region(f.region)
	if region == "" {
		region = models.Region(cfg.News.DefaultRegion)
	}
	category := models.Category(f.category)
	if category == "" {
		category = models.Category(cfg.News.DefaultCategory)
	}

	var fetcher *feeds.Fetcher
	if f.feedURL != "" {
		src := feeds.NewRSSSource(f.feedURL, region, category, feeds.NewHTTPClient())
		fetcher = feeds.NewFetcher([]feeds.Source{src}, nil)
	} else {
		var closeCache func()
		fetcher, closeCache = app.NewFetcher(ctx, cfg)
		defer closeCache()
	}

	articles, err := fetcher.Headlines(ctx, region, category)
	if err != nil {
		return nil, fmt.Errorf("fetching headlines: %w", err)
	}
	return articles, nil
}

var trendingFlags feedFlags

var trendingCmd = &cobra.Command{
	Use:   "trending",
	Short: "Rank the most frequent entities across a feed",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		svc, err := app.NewEntityService(cfg)
		if err != nil {
			return err
		}

		articles, err := trendingFlags.articles(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		agg := analysis.NewAggregator(svc, cfg.NLP.Concurrency)
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "COUNT\tLABEL\tTEXT")
		for _, e := range agg.Trending(cmd.Context(), articles, trendingFlags.limit) {
			fmt.Fprintf(tw, "%d\t%s\t%s\n", e.Count, e.Label, e.Text)
		}
		return tw.Flush()
	},
}

var topicsFlags feedFlags

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "Rank the most frequent keywords across a feed",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		articles, err := topicsFlags.articles(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "COUNT\tKEYWORD")
		for _, k := range analysis.TrendingKeywords(articles, topicsFlags.limit) {
			fmt.Fprintf(tw, "%d\t%s\n", k.Count, k.Keyword)
		}
		return tw.Flush()
	},
}

func init() {
	trendingFlags.register(trendingCmd, 6)
	topicsFlags.register(topicsCmd, 10)
}
