package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is host level configuration. Profiles do not own any of it
type Config struct {
	Area     string
	OSMPath  string
	Output   string
	Profile  string
	Workers  int
	LogLevel string
}

// loadConfig merges (in order of precedence) command line flags, BIKEINFRA_* environment variables,
// optional config file and defaults
func loadConfig(args []string) (*Config, error) {
	fs := pflag.NewFlagSet("bikeinfra", pflag.ContinueOnError)
	fs.String("config", "", "Optional configuration file (yaml, json, toml or .env)")
	fs.String("area", "germany", "Geofabrik area name. Used to guess input file when 'osm_path' is not provided")
	fs.String("osm_path", "", "Filename of *.osm.pbf or *.osm file. Default is 'data/sources/<area>.osm.pbf'")
	fs.String("output", "", "Filename of output GeoJSON file. Default is 'data/bike-<profile>.geojson'")
	fs.String("profile", "all", "Profile to apply. Expected values: secondary / surface / all")
	fs.Int("workers", 0, "Number of goroutines processing features. Zero means GOMAXPROCS")
	fs.String("log_level", "info", "Log level. Expected values: debug / info / warn / error")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return nil, errors.Wrap(err, "Can't bind flags")
	}
	v.SetEnvPrefix("BIKEINFRA")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile := v.GetString("config"); configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "Can't read config file '%s'", configFile)
		}
	}

	cfg := &Config{
		Area:     v.GetString("area"),
		OSMPath:  v.GetString("osm_path"),
		Output:   v.GetString("output"),
		Profile:  strings.ToLower(v.GetString("profile")),
		Workers:  v.GetInt("workers"),
		LogLevel: v.GetString("log_level"),
	}
	if cfg.Area == "" {
		cfg.Area = "germany"
	}
	if cfg.OSMPath == "" {
		cfg.OSMPath = filepath.Join("data", "sources", cfg.Area+".osm.pbf")
	}
	if cfg.Profile == "" {
		cfg.Profile = "all"
	}
	if cfg.Output == "" {
		cfg.Output = filepath.Join("data", fmt.Sprintf("bike-%s.geojson", cfg.Profile))
	}
	if cfg.Workers < 0 {
		return nil, fmt.Errorf("Number of workers should be non-negative. Got %d", cfg.Workers)
	}
	return cfg, nil
}
