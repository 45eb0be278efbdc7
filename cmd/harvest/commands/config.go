package commands

import (
	"errors"
	"interview-harvest/lib/browser"
	"interview-harvest/lib/collectors/gfg"
	"interview-harvest/lib/collectors/interviewbit"
	"interview-harvest/lib/collectors/leetcode"
	"interview-harvest/lib/collectors/reddit"
	"interview-harvest/lib/collectors/tryexponent"
	"interview-harvest/lib/configutil"
	"interview-harvest/lib/scrapeutil"
	"interview-harvest/lib/sftpdrop"
	"interview-harvest/lib/warehouse"
	"log/slog"
	"os"
)

const defaultWarehouseFile = "interview_questions.db"

type CollectorsConfig struct {
	Gfg          gfg.Config          `json:"gfg"`
	Leetcode     leetcode.Config     `json:"leetcode"`
	Reddit       reddit.Config       `json:"reddit"`
	InterviewBit interviewbit.Config `json:"interviewbit"`
	TryExponent  tryexponent.Config  `json:"tryexponent"`
}

type Config struct {
	Warehouse warehouse.Config `json:"warehouse"`
	// directory collect writes to and load searches, defaults to the cwd
	ExportDir  string            `json:"export_dir"`
	Http       scrapeutil.Config `json:"http"`
	Browser    browser.Options   `json:"browser"`
	Collectors CollectorsConfig  `json:"collectors"`
	// optional, uploads every written csv when a host is set
	Sftp sftpdrop.Config `json:"sftp"`
}

// readConfig reads path (plus its .local override), a missing file yields
// the defaults.
func readConfig(path string) (Config, error) {
	config, err := configutil.ReadConfig[Config](path)
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("no config file found, using defaults", "path", path)
		err = nil
	}
	if err != nil {
		return Config{}, err
	}

	if config.Warehouse.Driver == "" {
		config.Warehouse.Driver = warehouse.DriverSqlite
	}
	if config.Warehouse.Driver == warehouse.DriverSqlite && config.Warehouse.File == "" {
		config.Warehouse.File = defaultWarehouseFile
	}
	if config.ExportDir == "" {
		config.ExportDir = "."
	}
	return config, nil
}
