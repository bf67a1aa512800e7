package lambert

import (
	"os"
	"sync"

	"github.com/spf13/viper"
)

// _lambertconfig is a "hidden" struct, just use `lambertConfig`
type _lambertconfig struct {
	tolerance     float64
	maxIterations uint
}

var (
	cfgOnce sync.Once
	config  = _lambertconfig{tolerance: 1e-6, maxIterations: 1000}
)

// lambertConfig returns the solver configuration, loading it on first use.
// The optional conf.toml in the directory pointed to by the LAMBERT_CONFIG
// environment variable overrides the compiled defaults:
//
//	[solver]
//	tolerance = 1e-6      # seconds
//	max_iterations = 1000
//
// Unlike a simulation tool, a library must work unconfigured: a missing
// variable or file keeps the defaults instead of panicking.
func lambertConfig() _lambertconfig {
	cfgOnce.Do(func() {
		confPath := os.Getenv("LAMBERT_CONFIG")
		if confPath == "" {
			return
		}
		viper.SetConfigName("conf")
		viper.AddConfigPath(confPath)
		if err := viper.ReadInConfig(); err != nil {
			return
		}
		if tol := viper.GetFloat64("solver.tolerance"); tol > 0 {
			config.tolerance = tol
		}
		if maxIt := viper.GetInt("solver.max_iterations"); maxIt > 0 {
			config.maxIterations = uint(maxIt)
		}
	})
	return config
}
