package conf

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/ini.v1"

	"github.com/zhukovaskychina/go-ftlsim/logger"
	"github.com/zhukovaskychina/go-ftlsim/server/ftl"
)

var ConfigPath string

type CommandLineArgs struct {
	ConfigPath string
}

// IniConfig adapts an ini.v1 file to ftl.Config, following a Cfg/Load idiom
// (ini.Load + section.Key + Must* accessors) restructured around the flat
// ftl.Section/key space of config_keys.go instead of mysqld/session sections.
type IniConfig struct {
	Raw *ini.File
}

func NewIniConfig() *IniConfig {
	return &IniConfig{Raw: ini.Empty()}
}

func setHomePath(args *CommandLineArgs) {
	if args.ConfigPath != "" {
		ConfigPath = args.ConfigPath
		return
	}
	ConfigPath, _ = filepath.Abs(".")
}

// Load reads the ini file at args.ConfigPath. A missing or unparsable
// configuration file is a fatal startup error, not a recoverable one -- so
// this logs and exits rather than returning an error to a caller that has
// nothing sensible to do with it.
func (c *IniConfig) Load(args *CommandLineArgs) *IniConfig {
	setHomePath(args)

	if _, statErr := os.Stat(ConfigPath); os.IsNotExist(statErr) {
		logger.Fatalf("go-ftlsim: config file does not exist: %s", ConfigPath)
	}

	parsed, err := ini.Load(ConfigPath)
	if err != nil {
		logger.Fatalf("go-ftlsim: failed to parse config %s: %v", ConfigPath, errors.WithStack(err))
	}
	c.Raw = parsed
	return c
}

func (c *IniConfig) section(name string) *ini.Section {
	return c.Raw.Section(name)
}

func (c *IniConfig) ReadInt(section, key string) int64 {
	k, err := c.section(section).GetKey(key)
	if err != nil {
		logger.Fatalf("go-ftlsim: missing config key [%s] %s: %v", section, key, err)
	}
	v, err := k.Int64()
	if err != nil {
		logger.Fatalf("go-ftlsim: config key [%s] %s is not an int: %v", section, key, err)
	}
	return v
}

func (c *IniConfig) ReadUint(section, key string) uint64 {
	k, err := c.section(section).GetKey(key)
	if err != nil {
		logger.Fatalf("go-ftlsim: missing config key [%s] %s: %v", section, key, err)
	}
	v, err := k.Uint64()
	if err != nil {
		logger.Fatalf("go-ftlsim: config key [%s] %s is not a uint: %v", section, key, err)
	}
	return v
}

func (c *IniConfig) ReadFloat(section, key string) float64 {
	k, err := c.section(section).GetKey(key)
	if err != nil {
		logger.Fatalf("go-ftlsim: missing config key [%s] %s: %v", section, key, err)
	}
	v, err := k.Float64()
	if err != nil {
		logger.Fatalf("go-ftlsim: config key [%s] %s is not a float: %v", section, key, err)
	}
	return v
}

func (c *IniConfig) ReadBool(section, key string) bool {
	k, err := c.section(section).GetKey(key)
	if err != nil {
		logger.Fatalf("go-ftlsim: missing config key [%s] %s: %v", section, key, err)
	}
	v, err := k.Bool()
	if err != nil {
		logger.Fatalf("go-ftlsim: config key [%s] %s is not a bool: %v", section, key, err)
	}
	return v
}

var _ ftl.Config = (*IniConfig)(nil)

// LoadFTLParams reads the FTL_CONFIG keys that ftl.FTLParams has a field for
// into that typed bundle FTLCore's constructor expects, following a
// parseMysqldCfg-like idiom (one explicit GetKey-and-convert per field)
// restructured around the ftl package's flat key space. The keys
// mapping_mode, overprovision_ratio, refresh_policy, refresh_threshold,
// refresh_filter_size and refresh_mode are declared in config_keys.go but
// not read here.
func LoadFTLParams(cfg ftl.Config) ftl.FTLParams {
	return ftl.FTLParams{
		IOUnitInPage:        uint32(cfg.ReadUint(ftl.Section, ftl.KeyIOUnitInPage)),
		PagesInBlock:        uint32(cfg.ReadUint(ftl.Section, ftl.KeyPagesInBlock)),
		TotalPhysicalBlocks: uint32(cfg.ReadUint(ftl.Section, ftl.KeyTotalPhysicalBlocks)),
		TotalLogicalBlocks:  uint32(cfg.ReadUint(ftl.Section, ftl.KeyTotalLogicalBlocks)),
		PageCountToMaxPerf:  uint32(cfg.ReadUint(ftl.Section, ftl.KeyPageCountToMaxPerf)),
		BadBlockThreshold:   cfg.ReadUint(ftl.Section, ftl.KeyBadBlockThreshold),
		InitialEraseCount:   cfg.ReadUint(ftl.Section, ftl.KeyInitialEraseCount),
		UseRandomIOTweak:    cfg.ReadBool(ftl.Section, ftl.KeyUseRandomIOTweak),

		HotColdSeparation: cfg.ReadBool(ftl.Section, ftl.KeyHotColdSeparation),
		HotBlockRatio:     cfg.ReadFloat(ftl.Section, ftl.KeyHotBlockRatio),
		CoolDownWindow:    uint32(cfg.ReadUint(ftl.Section, ftl.KeyCoolDownWindowSize)),

		GCThresholdRatio:   cfg.ReadFloat(ftl.Section, ftl.KeyGCThresholdRatio),
		GCReclaimThreshold: cfg.ReadFloat(ftl.Section, ftl.KeyGCReclaimThreshold),
		GCMode:             ftl.GCMode(cfg.ReadUint(ftl.Section, ftl.KeyGCMode)),
		GCReclaimBlock:     int(cfg.ReadInt(ftl.Section, ftl.KeyGCReclaimBlock)),
		EvictPolicy:        ftl.EvictPolicy(cfg.ReadUint(ftl.Section, ftl.KeyGCEvictPolicy)),
		DChoiceParam:       int(cfg.ReadInt(ftl.Section, ftl.KeyGCDChoiceParam)),
		RecoParam:          cfg.ReadFloat(ftl.Section, ftl.KeyGCRecoParam),

		FillingMode:      ftl.FillingMode(cfg.ReadUint(ftl.Section, ftl.KeyFillingMode)),
		FillRatio:        cfg.ReadFloat(ftl.Section, ftl.KeyFillRatio),
		ColdRatio:        cfg.ReadFloat(ftl.Section, ftl.KeyColdRatio),
		InvalidPageRatio: cfg.ReadFloat(ftl.Section, ftl.KeyInvalidPageRatio),

		RefreshQueueCount:      int(cfg.ReadInt(ftl.Section, ftl.KeyRefreshFilterNum)),
		RefreshPeriodNs:        cfg.ReadUint(ftl.Section, ftl.KeyRefreshPeriod),
		RefreshMaxRBER:         float32(cfg.ReadFloat(ftl.Section, ftl.KeyRefreshMaxRBER)),
		RefreshGroupingMode:    ftl.RefreshGroupingMode(cfg.ReadUint(ftl.Section, ftl.KeyRefreshGroupingMode)),
		RefreshGroupingSize:    uint32(cfg.ReadUint(ftl.Section, ftl.KeyRefreshGroupingSize)),
		RefreshReenrolThresh:   int(cfg.ReadInt(ftl.Section, ftl.KeyRefreshReenrolThresh)),
		RefreshMaxLayerPerTick: int(cfg.ReadInt(ftl.Section, ftl.KeyRefreshMaxLayerNum)),
		LayersPerBlock:         uint32(cfg.ReadUint(ftl.Section, ftl.KeyLayersPerBlock)),

		ErrorModel: ftl.ErrorModelParams{
			Temperature: cfg.ReadFloat(ftl.Section, ftl.KeyTemperature),
			Ea:          cfg.ReadFloat(ftl.Section, ftl.KeyEa),
			Epsilon:     cfg.ReadFloat(ftl.Section, ftl.KeyEpsilon),
			Alpha:       cfg.ReadFloat(ftl.Section, ftl.KeyAlpha),
			Beta:        cfg.ReadFloat(ftl.Section, ftl.KeyBeta),
			Gamma:       cfg.ReadFloat(ftl.Section, ftl.KeyGamma),
			KTerm:       cfg.ReadFloat(ftl.Section, ftl.KeyKTerm),
			MTerm:       cfg.ReadFloat(ftl.Section, ftl.KeyMTerm),
			NTerm:       cfg.ReadFloat(ftl.Section, ftl.KeyNTerm),
			Sigma:       cfg.ReadFloat(ftl.Section, ftl.KeyErrorSigma),
			PageSize:    uint32(cfg.ReadUint(ftl.Section, ftl.KeyPageSize)),
			Seed:        uint32(cfg.ReadUint(ftl.Section, ftl.KeyRandomSeed)),
		},

		RandomSeed: uint32(cfg.ReadUint(ftl.Section, ftl.KeyRandomSeed)),
	}
}
