package main

import (
	"context"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/grupomymce/sitemap-tools/config"
	"github.com/grupomymce/sitemap-tools/internal/linkcheck"
	"github.com/grupomymce/sitemap-tools/internal/models"
	"github.com/grupomymce/sitemap-tools/internal/site"
	"github.com/grupomymce/sitemap-tools/internal/sitemap"
	"github.com/grupomymce/sitemap-tools/internal/storage"
	"github.com/grupomymce/sitemap-tools/internal/utils"
)

var (
	cfgFile   string
	rootFlag  string
	domainArg string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "sitemap",
	Short: "Sitemap tooling for a static website",
	Long: `sitemap walks a static website for HTML pages, writes sitemap.xml,
verifies an existing sitemap against the files on disk, audits pages for
common SEO problems and checks internal links.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig(cfgFile)
		if err != nil {
			return err
		}
		if rootFlag != "" {
			cfg.Site.Root = rootFlag
		}
		if domainArg != "" {
			cfg.Site.Domain = domainArg
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./sitemap.yaml or ./config/sitemap.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rootFlag, "root", "r", "", "site root directory (default \".\")")
	rootCmd.PersistentFlags().StringVar(&domainArg, "domain", "", "site domain used in <loc> (default "+config.DefaultDomain+")")
}

func generatorCollector() *site.Collector {
	return site.NewCollector(cfg.Site.Root, cfg.Site.SkipDirs, cfg.Generator.Exclude)
}

func verifierCollector() *site.Collector {
	return site.NewCollector(cfg.Site.Root, cfg.Site.SkipDirs, cfg.Verifier.Exclude)
}

// linkSourceCollector finds every page whose links are checked, including
// pages the sitemap leaves out.
func linkSourceCollector() *site.Collector {
	return site.NewCollector(cfg.Site.Root, cfg.Linkcheck.SkipDirs, cfg.Linkcheck.Exclude)
}

func newGenerator() *sitemap.Generator {
	return sitemap.NewGenerator(generatorCollector(), cfg.Domain()).WithChangeFreq(cfg.Generator.ChangeFreq)
}

func newChecker(parallel int) *linkcheck.Checker {
	return linkcheck.NewChecker(generatorCollector(), parallel).WithLinkSources(linkSourceCollector())
}

// sitePath resolves a configured file name against the site root.
func sitePath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(cfg.Site.Root, name)
}

func newLogger(cmd *cobra.Command) (*utils.RunLogger, error) {
	logger, err := utils.NewRunLogger(cmd.ErrOrStderr(), cfg.Log.Dir, cmd.Name())
	if err != nil {
		return nil, err
	}
	if path := logger.Path(); path != "" {
		logger.LogDebug("Writing log to %s", path)
	}
	return logger, nil
}

// record saves run to the configured history store, if any.
func record(ctx context.Context, logger *utils.RunLogger, run *models.Run) {
	store, err := storage.NewStore(cfg.Database.Driver, cfg.Database.URL)
	if err != nil {
		logger.LogError("Failed to open run history: %v", err)
		return
	}
	if store == nil {
		return
	}
	defer store.Close()

	if err := store.SaveRun(ctx, run); err != nil {
		logger.LogError("Failed to record %s run: %v", run.Kind, err)
		return
	}
	logger.LogDebug("Recorded %s run %s", run.Kind, run.ID)
}

func stdout(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}
