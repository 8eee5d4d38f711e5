package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

var singleConfig *Config = nil

type Config struct {
	Database *dbConfig
	Service  *svcConfig
	Graph    *graphConfig
}

type dbConfig struct {
	Type     string `envconfig:"TRACKER_DB_TYPE" default:"sqlite"`
	Path     string `envconfig:"TRACKER_DB_PATH" default:"data/applications.db"`
	Hostname string `envconfig:"TRACKER_DB_HOST" default:"localhost"`
	Port     int    `envconfig:"TRACKER_DB_PORT" default:"5432"`
	Name     string `envconfig:"TRACKER_DB_NAME" default:"tracker"`
	User     string `envconfig:"TRACKER_DB_USER" default:"admin"`
	Password string `envconfig:"TRACKER_DB_PASS" default:"adminpass"`
}

type svcConfig struct {
	Address         string `envconfig:"TRACKER_ADDRESS" default:":8080"`
	LogLevel        string `envconfig:"TRACKER_LOG_LEVEL" default:"info"`
	Timezone        string `envconfig:"TRACKER_TIMEZONE" default:"Europe/Berlin"`
	SyncDays        int    `envconfig:"TRACKER_SYNC_DAYS" default:"30"`
	MergeWindowDays int    `envconfig:"TRACKER_MERGE_WINDOW_DAYS" default:"14"`
	ExportPath      string `envconfig:"TRACKER_EXPORT_PATH" default:"data/applications.xlsx"`
}

type graphConfig struct {
	ClientID       string   `envconfig:"TRACKER_GRAPH_CLIENT_ID" default:""`
	Authority      string   `envconfig:"TRACKER_GRAPH_AUTHORITY" default:"https://login.microsoftonline.com/consumers"`
	Endpoint       string   `envconfig:"TRACKER_GRAPH_ENDPOINT" default:"https://graph.microsoft.com/v1.0"`
	Scopes         []string `envconfig:"TRACKER_GRAPH_SCOPES" default:"Mail.Read,User.Read"`
	TokenCachePath string   `envconfig:"TRACKER_GRAPH_TOKEN_CACHE" default:"state/token_cache.json"`
	PageSize       int      `envconfig:"TRACKER_GRAPH_PAGE_SIZE" default:"50"`
	RetryCount     int      `envconfig:"TRACKER_GRAPH_RETRY_COUNT" default:"3"`
}

func New() (*Config, error) {
	if singleConfig == nil {
		singleConfig = new(Config)
		if err := envconfig.Process("", singleConfig); err != nil {
			return nil, err
		}
	}
	return singleConfig, nil
}

// NewDefault returns a fresh config without touching the singleton.
// Callers may override individual fields before use.
func NewDefault() *Config {
	c := new(Config)
	if err := envconfig.Process("", c); err != nil {
		panic(err)
	}
	return c
}

// Location resolves the configured timezone, falling back to UTC when the
// name is unknown to the host tzdata.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Service.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
