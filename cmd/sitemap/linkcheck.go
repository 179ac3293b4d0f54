package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	linkParallel int
	linkStrict   bool
)

var linkcheckCmd = &cobra.Command{
	Use:   "linkcheck",
	Short: "Crawl the site from / and report broken links and orphan pages",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger(cmd)
		if err != nil {
			return err
		}
		defer logger.Close()

		if cmd.Flags().Changed("parallel") {
			cfg.Linkcheck.Parallel = linkParallel
		}

		logger.LogInfo("Crawling %s with parallelism %d", cfg.Site.Root, cfg.Linkcheck.Parallel)
		report, err := newChecker(cfg.Linkcheck.Parallel).Check(cmd.Context())
		if err != nil {
			logger.LogError("Link check failed: %v", err)
			return err
		}

		w := logger.Tee(stdout(cmd))
		fmt.Fprintf(w, "Link check complete. Visited %d URLs. Found %d broken links, %d orphan pages.\n",
			report.Visited, len(report.Broken), len(report.Orphans))
		for _, b := range report.Broken {
			fmt.Fprintf(w, "[BROKEN LINK] In %s: %s (%d)\n", b.Referrer, b.URL, b.Status)
		}
		for _, o := range report.Orphans {
			fmt.Fprintf(w, "[ORPHAN] %s\n", o)
		}

		if linkStrict && !report.OK() {
			return errors.New("link check found problems")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(linkcheckCmd)

	linkcheckCmd.Flags().IntVarP(&linkParallel, "parallel", "p", 4, "number of concurrent requests")
	linkcheckCmd.Flags().BoolVar(&linkStrict, "strict", false, "exit non-zero on broken links or orphan pages")
}
