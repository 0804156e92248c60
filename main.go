package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"newsdigest/config"
	"newsdigest/deliver"
	"newsdigest/digest"
	"newsdigest/render"
	"newsdigest/rssfeeds"
	"newsdigest/seencache"
	"newsdigest/types"

	"github.com/joho/godotenv"
)

type cliOptions struct {
	format       string
	hours        int
	count        int
	feedsFile    string
	dryRun       bool
	cachePath    string
	output       string
	strictParse  bool
	fullContent  bool
	telegramChat int64
	kafkaTopic   string
}

func main() {
	var opts cliOptions
	flag.StringVar(&opts.format, "format", "json", "Output format: json, text, markdown, chat")
	flag.IntVar(&opts.hours, "hours", config.DefaultWindowHours, "Recency window in hours")
	flag.IntVar(&opts.count, "count", config.DefaultCount, "Maximum number of items in the digest (0 for no cap)")
	flag.StringVar(&opts.feedsFile, "feeds-file", "", "JSON file with feed sources (default: built-in list)")
	flag.BoolVar(&opts.dryRun, "dry-run", false, "Fetch and report counts and errors without emitting items")
	flag.StringVar(&opts.cachePath, "cache", "", "Seen-URL cache location: file path, redis:// URL, or s3://bucket/key")
	flag.StringVar(&opts.output, "output", "", "Write the digest to this file instead of stdout")
	flag.BoolVar(&opts.strictParse, "strict-parse", false, "Parse feeds with a real feed parser instead of pattern matching")
	flag.BoolVar(&opts.fullContent, "full-content", false, "Fetch article pages and replace summaries with readable text")
	flag.Int64Var(&opts.telegramChat, "telegram-chat", 0, "Also deliver the chat rendering to this Telegram chat ID")
	flag.StringVar(&opts.kafkaTopic, "kafka-topic", "", "Also publish the JSON digest to this Kafka topic")
	listFeeds := flag.Bool("feeds", false, "List the built-in feed sources and exit")
	flag.Parse()

	// Log to stderr so the digest on stdout stays clean
	log.SetOutput(os.Stderr)

	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	if *listFeeds {
		fmt.Println("Built-in feed sources:")
		for _, f := range rssfeeds.DefaultFeeds {
			fmt.Printf("  %-20s %-8s %s\n", f.Name, f.Category, f.URL)
		}
		return
	}

	if err := run(context.Background(), opts); err != nil {
		log.Fatalf("newsdigest: %v", err)
	}
}

func run(ctx context.Context, opts cliOptions) error {
	format := render.Format(opts.format)
	switch format {
	case render.FormatJSON, render.FormatText, render.FormatMarkdown, render.FormatChat:
	default:
		return fmt.Errorf("unknown format %q", opts.format)
	}

	feeds := rssfeeds.DefaultFeeds
	if opts.feedsFile != "" {
		loaded, err := rssfeeds.LoadFeeds(opts.feedsFile)
		if err != nil {
			return err
		}
		feeds = loaded
	}

	// Dry runs never touch the cache: nothing is delivered, so nothing
	// counts as seen
	var cache seencache.Store
	if opts.cachePath != "" && !opts.dryRun {
		store, err := seencache.Open(ctx, opts.cachePath)
		if err != nil {
			return err
		}
		cache = store
	}

	extract := func(doc, feedName, category string) ([]types.Item, error) {
		return rssfeeds.ExtractItems(doc, feedName, category), nil
	}
	if opts.strictParse {
		extract = rssfeeds.StrictExtract
	}

	pipeline := digest.New(rssfeeds.NewFetcher(), extract)
	d, err := pipeline.Run(ctx, digest.Options{
		Feeds:       feeds,
		WindowHours: opts.hours,
		MaxItems:    opts.count,
		Cache:       cache,
		FullContent: opts.fullContent && !opts.dryRun,
	})
	if err != nil {
		return err
	}

	if opts.dryRun {
		fmt.Printf("Dry run: %d items from %d feeds, %d error(s)\n", d.Count, len(feeds), len(d.Errors))
		for _, e := range d.Errors {
			fmt.Printf("  %s: %s\n", e.Feed, e.Error)
		}
		return nil
	}

	out, err := render.Render(d, format)
	if err != nil {
		return err
	}

	if opts.output != "" {
		if err := os.WriteFile(opts.output, []byte(out), 0644); err != nil {
			return fmt.Errorf("write output file: %w", err)
		}
		log.Printf("Wrote digest to %s", opts.output)
	} else {
		fmt.Print(out)
	}

	if opts.telegramChat != 0 {
		sender, err := deliver.NewTelegramSender(opts.telegramChat)
		if err != nil {
			return err
		}
		if err := sender.Send(render.Chat(d)); err != nil {
			return err
		}
		log.Printf("Delivered digest to Telegram chat %d", opts.telegramChat)
	}

	if opts.kafkaTopic != "" {
		brokers := strings.Split(config.GetEnvOrDefault("KAFKA_BROKERS", "localhost:9092"), ",")
		publisher, err := deliver.NewKafkaPublisher(brokers, opts.kafkaTopic)
		if err != nil {
			return err
		}
		defer publisher.Close()
		if err := publisher.Publish(d); err != nil {
			return err
		}
		log.Printf("Published digest to Kafka topic %s", opts.kafkaTopic)
	}

	return nil
}
