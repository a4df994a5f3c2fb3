package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Sources is the YAML-configured input surface: the named RSS feeds, the
// keyword list every adapter filters with, and the News API query.
type Sources struct {
	Feeds    []FeedSource `yaml:"feeds"`
	Keywords []string     `yaml:"keywords"`
	NewsAPI  NewsAPIQuery `yaml:"newsapi"`
}

// FeedSource is one named RSS feed.
type FeedSource struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// NewsAPIQuery holds the search-API side of the source config.
type NewsAPIQuery struct {
	Query    string `yaml:"query"`
	Language string `yaml:"language"`
}

// LoadSources reads the source list from YAML.
func LoadSources(path string) (*Sources, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sources config: %w", err)
	}
	defer f.Close()

	var src Sources
	if err := yaml.NewDecoder(f).Decode(&src); err != nil {
		return nil, fmt.Errorf("parse sources config: %w", err)
	}

	if len(src.Feeds) == 0 {
		return nil, fmt.Errorf("sources config %s lists no feeds", path)
	}
	if len(src.Keywords) == 0 {
		return nil, fmt.Errorf("sources config %s lists no keywords", path)
	}
	if src.NewsAPI.Language == "" {
		src.NewsAPI.Language = "en"
	}

	return &src, nil
}
