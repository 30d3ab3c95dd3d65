package conf

import (
	"fmt"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"

	"github.com/zhukovaskychina/go-ftlsim/logger"
	"github.com/zhukovaskychina/go-ftlsim/server/ftl"
)

// TomlConfig is an alternate ftl.Config backend for deployments that prefer
// a TOML tunables file over the ini format IniConfig reads. Both adapters
// expose the identical (section, key) surface so FTLCore and LoadFTLParams
// never know which was used.
type TomlConfig struct {
	tree *toml.Tree
}

func LoadTomlConfig(path string) (*TomlConfig, error) {
	tree, err := toml.LoadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "go-ftlsim: failed to parse toml config %s", path)
	}
	return &TomlConfig{tree: tree}, nil
}

func (c *TomlConfig) dottedKey(section, key string) string {
	return fmt.Sprintf("%s.%s", section, key)
}

func (c *TomlConfig) get(section, key string) interface{} {
	path := c.dottedKey(section, key)
	v := c.tree.Get(path)
	if v == nil {
		logger.Fatalf("go-ftlsim: missing toml config key %s", path)
	}
	return v
}

func (c *TomlConfig) ReadInt(section, key string) int64 {
	switch v := c.get(section, key).(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	default:
		logger.Fatalf("go-ftlsim: toml key %s.%s is not an integer", section, key)
		return 0
	}
}

func (c *TomlConfig) ReadUint(section, key string) uint64 {
	v := c.ReadInt(section, key)
	if v < 0 {
		logger.Fatalf("go-ftlsim: toml key %s.%s must be non-negative", section, key)
	}
	return uint64(v)
}

func (c *TomlConfig) ReadFloat(section, key string) float64 {
	switch v := c.get(section, key).(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	default:
		logger.Fatalf("go-ftlsim: toml key %s.%s is not a float", section, key)
		return 0
	}
}

func (c *TomlConfig) ReadBool(section, key string) bool {
	v, ok := c.get(section, key).(bool)
	if !ok {
		logger.Fatalf("go-ftlsim: toml key %s.%s is not a bool", section, key)
	}
	return v
}

var _ ftl.Config = (*TomlConfig)(nil)
