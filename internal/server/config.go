package server

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/iwvelando/payment-optimizer/internal/config"
	"github.com/iwvelando/payment-optimizer/pkg/constants"
	"gopkg.in/yaml.v3"
)

// Config is the YAML document read by payment-optimizer-server.
type Config struct {
	Address       string                 `yaml:"address"`
	MaxUploadSize string                 `yaml:"maxUploadSize"`
	Logging       config.LoggingConfig   `yaml:"logging"`
	Optimizer     config.OptimizerConfig `yaml:"optimizer"`

	uploadLimit int64
}

func defaultConfig() *Config {
	return &Config{
		Address:       constants.DefaultServerAddress,
		MaxUploadSize: strconv.FormatInt(constants.DefaultMaxUploadSizeBytes, 10),
		Optimizer: config.OptimizerConfig{
			PointsID: constants.DefaultPointsMethodID,
			Workers:  constants.DefaultWorkers,
		},
		uploadLimit: constants.DefaultMaxUploadSizeBytes,
	}
}

// LoadConfig reads the server document at path. An empty path or a file
// that does not exist yields the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return cfg, nil
	case err != nil:
		return nil, fmt.Errorf("failed to read server config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse server config: %w", err)
	}
	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// UploadSizeBytes is the largest optimize request body accepted.
func (c *Config) UploadSizeBytes() int64 {
	return c.uploadLimit
}

// SetUploadSizeBytes replaces the request body limit. Non-positive sizes are ignored.
func (c *Config) SetUploadSizeBytes(size int64) {
	if size <= 0 {
		return
	}
	c.uploadLimit = size
	c.MaxUploadSize = strconv.FormatInt(size, 10)
}

// applyDefaults fills blanks left by a partial document and resolves the
// upload size.
func (c *Config) applyDefaults() error {
	if strings.TrimSpace(c.Address) == "" {
		c.Address = constants.DefaultServerAddress
	}
	if strings.TrimSpace(c.Optimizer.PointsID) == "" {
		c.Optimizer.PointsID = constants.DefaultPointsMethodID
	}
	if c.Optimizer.Workers < 1 {
		c.Optimizer.Workers = constants.DefaultWorkers
	}

	limit, err := ParseSize(c.MaxUploadSize)
	if err != nil {
		return err
	}
	if limit == 0 {
		limit = constants.DefaultMaxUploadSizeBytes
	}
	c.SetUploadSizeBytes(limit)
	return nil
}

// sizeUnits is checked in order, so two-letter suffixes come before "B".
var sizeUnits = []struct {
	suffix string
	factor int64
}{
	{"KB", 1 << 10},
	{"MB", 1 << 20},
	{"K", 1 << 10},
	{"M", 1 << 20},
	{"B", 1},
}

// ParseSize reads a byte count with an optional K/KB/M/MB/B suffix,
// case-insensitive, e.g. "256K" or "3mb". Blank input means the default limit.
func ParseSize(value string) (int64, error) {
	s := strings.ToUpper(strings.TrimSpace(value))
	if s == "" {
		return constants.DefaultMaxUploadSizeBytes, nil
	}

	factor := int64(1)
	for _, unit := range sizeUnits {
		if strings.HasSuffix(s, unit.suffix) {
			s = strings.TrimSpace(strings.TrimSuffix(s, unit.suffix))
			factor = unit.factor
			break
		}
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", value, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("invalid size %q: must not be negative", value)
	}
	if n > math.MaxInt64/factor {
		return 0, fmt.Errorf("invalid size %q: overflows int64", value)
	}
	return n * factor, nil
}
