package app

import (
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig is the single-file YAML configuration schema. Nested sections
// map one-to-one onto flags; flags win over file values.
type FileConfig struct {
	Publisher struct {
		Author string   `yaml:"author"`
		URLs   []string `yaml:"urls"`
	} `yaml:"publisher"`

	Contentful struct {
		SpaceID     string `yaml:"spaceID"`
		Environment string `yaml:"environment"`
		AccessToken string `yaml:"accessToken"`
		ContentType string `yaml:"contentType"`
		SiteBaseURL string `yaml:"siteBaseURL"`
	} `yaml:"contentful"`

	LLM struct {
		BaseURL string `yaml:"base"`
		Model   string `yaml:"model"`
		APIKey  string `yaml:"key"`
	} `yaml:"llm"`

	// Timeout is a Go duration string, e.g. "30s".
	Timeout string `yaml:"timeout"`
	Verbose bool   `yaml:"verbose"`
}

// LoadFileConfig reads and decodes the YAML config at path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("parse config: %w", err)
	}
	if fc.Timeout != "" {
		if _, err := time.ParseDuration(fc.Timeout); err != nil {
			return fc, fmt.Errorf("parse config: timeout: %w", err)
		}
	}
	return fc, nil
}

// Merge fills any unset field of cfg from the file config. Flag and env
// values already present in cfg are left alone.
func Merge(cfg Config, fc FileConfig) Config {
	if cfg.AuthorName == "" {
		cfg.AuthorName = fc.Publisher.Author
	}
	if len(cfg.PostURLs) == 0 {
		cfg.PostURLs = fc.Publisher.URLs
	}
	if cfg.ContentfulSpaceID == "" {
		cfg.ContentfulSpaceID = fc.Contentful.SpaceID
	}
	if cfg.ContentfulEnvironment == "" {
		cfg.ContentfulEnvironment = fc.Contentful.Environment
	}
	if cfg.ContentfulAccessToken == "" {
		cfg.ContentfulAccessToken = fc.Contentful.AccessToken
	}
	if cfg.ContentfulContentType == "" {
		cfg.ContentfulContentType = fc.Contentful.ContentType
	}
	if cfg.SiteBaseURL == "" {
		cfg.SiteBaseURL = fc.Contentful.SiteBaseURL
	}
	if cfg.LLMBaseURL == "" {
		cfg.LLMBaseURL = fc.LLM.BaseURL
	}
	if cfg.LLMModel == "" {
		cfg.LLMModel = fc.LLM.Model
	}
	if cfg.LLMAPIKey == "" {
		cfg.LLMAPIKey = fc.LLM.APIKey
	}
	if cfg.Timeout == 0 && fc.Timeout != "" {
		// Validity was checked at load time.
		cfg.Timeout, _ = time.ParseDuration(fc.Timeout)
	}
	if fc.Verbose {
		cfg.Verbose = true
	}
	return cfg
}
