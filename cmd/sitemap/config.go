package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config drives one sitemap build: the canonical origin, the output path,
// the static routes, and the optional robots.txt emission.
type Config struct {
	Origin string      `yaml:"origin"`
	Out    string      `yaml:"out"`
	Paths  []PathEntry `yaml:"paths"`
	Robots *RobotsOut  `yaml:"robots"`
}

// PathEntry is one static route in the sitemap.
type PathEntry struct {
	Loc        string `yaml:"loc"`
	ChangeFreq string `yaml:"changefreq"`
	Priority   string `yaml:"priority"`
}

// RobotsOut configures robots.txt generation alongside the sitemap.
type RobotsOut struct {
	Out        string   `yaml:"out"`
	Disallow   []string `yaml:"disallow"`
	Allow      []string `yaml:"allow"`
	CrawlDelay int      `yaml:"crawl_delay"`
}

// LoadConfig reads and validates the YAML build configuration.
func LoadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Out == "" {
		cfg.Out = "public/sitemap.xml"
	}
	return cfg, nil
}
