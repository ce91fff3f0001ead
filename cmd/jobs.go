package cmd

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/paperdesk/internal/models"
)

var (
	scrapeSource     string
	scrapeMaxResults int
	scrapeQuery      string
	processLimit     int
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Inspect and trigger backend jobs",
}

var jobsStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show how many papers have been processed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log, err := newLogger(cfg)
		if err != nil {
			return err
		}

		client := newClient(cfg, log)
		var status models.JobStatus
		if err := client.Get(cmd.Context(), "/jobs/status", &status); err != nil {
			return fmt.Errorf("fetching job status from %s: %w", client.BaseURL(), err)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Total papers: %d\n", status.TotalPapers)
		fmt.Fprintf(out, "Processed:    %d\n", status.Processed)
		fmt.Fprintf(out, "Unprocessed:  %d\n", status.Unprocessed)
		return nil
	},
}

var jobsScrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Fetch recent papers from a source (arxiv, biorxiv, pubmed)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log, err := newLogger(cfg)
		if err != nil {
			return err
		}

		req := models.ScrapeRequest{Source: scrapeSource, MaxResults: scrapeMaxResults, Query: scrapeQuery}
		client := newClient(cfg, log)
		var res models.ScrapeResult
		if err := client.Post(cmd.Context(), scrapePath(req), req, &res); err != nil {
			return fmt.Errorf("triggering scrape on %s: %w", client.BaseURL(), err)
		}
		if res.Error != "" {
			return fmt.Errorf("scrape rejected: %s", res.Error)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Scrape %s: %d papers from %s\n", res.Status, res.PapersScraped, res.Source)
		return nil
	},
}

var jobsProcessCmd = &cobra.Command{
	Use:   "process",
	Short: "Summarise and classify unprocessed papers in the background",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log, err := newLogger(cfg)
		if err != nil {
			return err
		}

		var res models.ScrapeResult
		path := "/jobs/process?limit=" + strconv.Itoa(processLimit)
		client := newClient(cfg, log)
		if err := client.Post(cmd.Context(), path, nil, &res); err != nil {
			return fmt.Errorf("triggering processing on %s: %w", client.BaseURL(), err)
		}
		msg := res.Message
		if msg == "" {
			msg = res.Status
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Processing %s\n", msg)
		return nil
	},
}

// scrapePath encodes a scrape request as the backend's query parameters.
func scrapePath(req models.ScrapeRequest) string {
	q := url.Values{}
	q.Set("source", req.Source)
	q.Set("max_results", strconv.Itoa(req.MaxResults))
	if req.Query != "" {
		q.Set("query", req.Query)
	}
	return "/jobs/scrape?" + q.Encode()
}

func init() {
	jobsScrapeCmd.Flags().StringVar(&scrapeSource, "source", "arxiv", "Source to scrape: arxiv, biorxiv or pubmed")
	jobsScrapeCmd.Flags().IntVar(&scrapeMaxResults, "max-results", 10, "Maximum papers to fetch")
	jobsScrapeCmd.Flags().StringVar(&scrapeQuery, "query", "", "Search query (pubmed only)")
	jobsProcessCmd.Flags().IntVar(&processLimit, "limit", 10, "Maximum papers to process")

	jobsCmd.AddCommand(jobsStatusCmd, jobsScrapeCmd, jobsProcessCmd)
	rootCmd.AddCommand(jobsCmd)
}
