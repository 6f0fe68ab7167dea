package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"hifisearch/config"
	"hifisearch/internal/browser"
	"hifisearch/internal/render"
	"hifisearch/internal/scraper"
	"hifisearch/logger"
	"hifisearch/services/cache"
	"hifisearch/services/publisher"
	"hifisearch/services/worker"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	flagMinPrice float64
	flagMaxPrice float64
	flagSites    []string
	flagExclude  []string
	flagSort     string
	flagDays     int
	flagJSON     bool
	flagPublish  bool
	flagExpand   bool
	flagNoLinks  bool
)

func main() {
	root := &cobra.Command{
		Use:   "hifisearch <query>",
		Short: "Search Swedish hifi marketplaces and shops for used gear",
		Long: `hifisearch queries Swedish marketplaces, auction sites and hifi shops
for second-hand audio gear and merges the results into one list.

Quoted spans in the query match as exact phrases, other words match
individually in any order.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, strings.Join(args, " "))
		},
		SilenceUsage: true,
	}

	root.Flags().Float64Var(&flagMinPrice, "min-price", 0, "lowest price to include, in kr")
	root.Flags().Float64Var(&flagMaxPrice, "max-price", 0, "highest price to include, in kr")
	root.Flags().StringSliceVarP(&flagSites, "sites", "s", nil, "only search these sites")
	root.Flags().StringSliceVarP(&flagExclude, "exclude", "e", nil, "skip these sites")
	root.Flags().StringVar(&flagSort, "sort", "date", "result order: date, site or price")
	root.Flags().IntVarP(&flagDays, "days", "d", 0, "only show listings from the last N days")
	root.Flags().BoolVar(&flagJSON, "json", false, "print results as JSON instead of a table")
	root.Flags().BoolVar(&flagPublish, "publish", false, "publish results to the configured Redis streams")
	root.Flags().BoolVar(&flagExpand, "expand", false, "also search synonym variants of the query")
	root.Flags().BoolVar(&flagNoLinks, "no-links", false, "disable terminal hyperlinks in the table")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, query string) error {
	// Load environment variables from .env file if exists
	_ = godotenv.Load()

	logger.Init()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	sortMode, err := render.ParseSortMode(flagSort)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cacheService := cache.NewMemcacheService(cfg.MemcacheAddr)
	httpNav := browser.NewHTTPNavigator(cacheService, cfg.PageCacheTTL)

	browserNav := browser.NewChromeNavigator(cfg.Headless)
	defer browserNav.Close()

	session := scraper.SessionConfig{
		MinInterval:  cfg.MinRequestInterval,
		MaxPages:     cfg.MaxPages,
		NavTimeout:   cfg.NavTimeout,
		StableWindow: cfg.StableWindow,
	}
	scrapers := scraper.CreateScrapers(session, httpNav, browserNav)
	engine := scraper.NewEngine(scrapers, cfg.SessionTimeout)

	var pub publisher.Publisher
	if flagPublish {
		redisPub := publisher.NewRedisPublisher(ctx, cfg.RedisAddr, cfg.RedisDB,
			cfg.RedisStreamPrefix, cfg.RedisStreamCount, cfg.RedisStreamMaxLen)
		defer redisPub.Close()
		pub = redisPub
	}

	opts := worker.Options{
		Include: flagSites,
		Exclude: flagExclude,
		Expand:  flagExpand,
		Publish: flagPublish,
	}
	if cmd.Flags().Changed("min-price") {
		opts.MinPrice = &flagMinPrice
	}
	if cmd.Flags().Changed("max-price") {
		opts.MaxPrice = &flagMaxPrice
	}

	w := worker.NewWorker(engine, pub)
	results := w.Run(ctx, query, opts)

	now := time.Now()
	listings := render.Flatten(results)
	listings = render.FilterByDays(listings, flagDays, now)
	render.Sort(listings, sortMode, now)

	if flagJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(listings)
	}

	if len(listings) == 0 {
		fmt.Printf("No listings found for %q\n", query)
		return nil
	}

	fmt.Printf("Results for %q, sorted by %s\n", query, sortMode)
	render.Table(os.Stdout, listings, now, !flagNoLinks)
	return nil
}
