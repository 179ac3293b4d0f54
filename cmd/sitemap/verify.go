package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/grupomymce/sitemap-tools/internal/sitemap"
)

var verifyStrict bool

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Compare sitemap.xml with the HTML files on disk",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger(cmd)
		if err != nil {
			return err
		}
		defer logger.Close()

		path := sitePath(cfg.Verifier.Sitemap)
		logger.LogInfo("Verifying %s against %s", path, cfg.Site.Root)

		report, err := sitemap.NewVerifier(verifierCollector(), cfg.Domain()).Verify(path)
		if err != nil {
			logger.LogError("Verify failed: %v", err)
			return err
		}
		report.Print(logger.Tee(stdout(cmd)))

		record(cmd.Context(), logger, report.Run(cfg.Site.Root))

		if verifyStrict && !report.InSync() {
			return errors.New("sitemap is out of sync with the file structure")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().BoolVar(&verifyStrict, "strict", false, "exit non-zero when the sitemap is out of sync")
}
