package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

const DefaultDomain = "https://www.grupomymce.com"

type Config struct {
	Site struct {
		Root     string
		Domain   string
		SkipDirs []string
	}
	Generator struct {
		Output     string
		Exclude    []string
		ChangeFreq string
	}
	Verifier struct {
		Sitemap string
		Exclude []string
	}
	Linkcheck struct {
		SkipDirs []string
		Exclude  []string
		Parallel int
	}
	Database struct {
		Driver string
		URL    string
	}
	Server struct {
		Port int
	}
	Log struct {
		Dir string
	}
}

// LoadConfig reads sitemap.yaml from path (or the default search paths when
// path is empty) and layers SITEMAP_* environment variables on top. A missing
// config file is not an error: every key has a default.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("sitemap")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("sitemap")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Default values
	v.SetDefault("site.root", ".")
	v.SetDefault("site.domain", DefaultDomain)
	v.SetDefault("site.skipdirs", []string{"node_modules"})
	v.SetDefault("generator.output", "sitemap.xml")
	v.SetDefault("generator.exclude", []string{
		"404.html",
		"index_clean_preview.html",
		"test.html",
		"instagram-test.html",
		"google",
	})
	v.SetDefault("generator.changefreq", "")
	v.SetDefault("verifier.sitemap", "sitemap.xml")
	v.SetDefault("verifier.exclude", []string{
		"index_clean_preview.html",
		"test.html",
		"404.html",
	})
	v.SetDefault("linkcheck.skipdirs", []string{"node_modules", "scripts", "_dist", ".gemini"})
	v.SetDefault("linkcheck.exclude", []string{})
	v.SetDefault("linkcheck.parallel", 4)
	v.SetDefault("database.driver", "")
	v.SetDefault("database.url", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.dir", "")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Domain returns the site domain without a trailing slash.
func (c *Config) Domain() string {
	return strings.TrimRight(c.Site.Domain, "/")
}
