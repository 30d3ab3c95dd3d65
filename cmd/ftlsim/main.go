package main

import (
	"flag"
	"fmt"

	"github.com/zhukovaskychina/go-ftlsim/logger"

	"github.com/zhukovaskychina/go-ftlsim/server/conf"
	"github.com/zhukovaskychina/go-ftlsim/server/ftl"
)

const help = `
******************************************************************************************
 go-ftlsim: a page-mapping flash translation layer simulator with
 retention-aware refresh and hot/cold block separation.

 flags:
   -configPath   path to an ini tunables file (see config_keys.go for keys)
   -ops          number of simulated host writes to issue (default 64)
******************************************************************************************
`

func main() {
	fmt.Print(help)

	var configPath string
	var ops int
	flag.StringVar(&configPath, "configPath", "", "ini config file path")
	flag.IntVar(&ops, "ops", 64, "number of simulated host writes")
	flag.Parse()

	logConfig := logger.LogConfig{
		ErrorLogPath: "",
		InfoLogPath:  "",
		LogLevel:     "info",
	}
	if err := logger.InitLogger(logConfig); err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	logger.Info("go-ftlsim starting...")

	args := &conf.CommandLineArgs{ConfigPath: configPath}
	cfg := conf.NewIniConfig().Load(args)

	params := conf.LoadFTLParams(cfg)

	pal := NewSimPAL()
	dram := NewSimDRAM()
	engine := NewSimEngine()

	core := ftl.NewFTLCore(params, pal, dram, engine)
	if err := core.Initialize(); err != nil {
		logger.Fatalf("failed to initialize FTL core: %v", err)
	}
	logger.Info("FTL core initialized")

	for lpn := uint64(0); lpn < uint64(ops); lpn++ {
		if _, err := core.Write(lpn % uint64(params.TotalLogicalBlocks) * 8); err != nil {
			logger.Errorf("write lpn=%d failed: %v", lpn, err)
			continue
		}
		if err := core.Tick(); err != nil {
			logger.Errorf("tick failed: %v", err)
		}
	}

	names := core.GetStatList()
	values := core.GetStatValues()
	logger.Info("simulation complete, final statistics:")
	for i, name := range names {
		fmt.Printf("  %-22s %v\n", name, values[i])
	}
}
