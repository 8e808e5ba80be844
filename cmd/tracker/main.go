package main

import (
	"fmt"
	"log"
	"os"

	"StepSentinel/internal/config"
	"StepSentinel/internal/fetcher"
	"StepSentinel/internal/recorder"
	"StepSentinel/internal/roster"
	"StepSentinel/internal/tracker"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <campaign_code>\n", os.Args[0])
		os.Exit(2)
	}
	campaignCode := os.Args[1]

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Load roster
	ros, err := roster.Load(cfg.Roster.File)
	if err != nil {
		log.Fatalf("[FATAL] load roster: %v", err)
	}
	log.Printf("[INFO] tracking %d roster users from %s", len(ros.Entries), cfg.Roster.File)

	// Init API client and paginator
	client := fetcher.NewMoonwalkClient(cfg.API.BaseURL, cfg.API.WebBaseURL, cfg.Proxy)
	log.Printf("[INFO] data source: %s", client.Name())

	pag := fetcher.NewPaginator(client,
		fetcher.RetryPolicy{MaxRetries: cfg.Fetch.MaxRetries, Delay: cfg.RetryDelay()},
		cfg.PageDelay())
	pag.Progress = func(fetched int) {
		log.Printf("[INFO] fetched data for %d players", fetched)
	}

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	t := &tracker.Tracker{
		Client:    client,
		Paginator: pag,
		Roster:    ros,
		Recorder:  rec,
		OutputDir: cfg.Output.Dir,
		WebInfo:   client.FetchCampaignInfoFromWeb,
	}

	log.Println("[INFO] starting to fetch game data...")
	if err := t.Run(campaignCode); err != nil {
		log.Fatalf("[FATAL] run: %v", err)
	}
}
