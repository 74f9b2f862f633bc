package config

import (
	"flag"
	"strconv"
)

var (
	flagConfig        = flag.String("config", "", "Path to config file")
	flagDebug         = flag.Bool("debug", false, "Enable debug logging")
	flagRadius        = flag.Float64("radius", -1, "Radius of deformation")
	flagPower         = optionalFloat64("power", "Power of deformation")
	flagSquaredRadius = flag.Bool("squared-radius", false, "Treat radius as a distance and square it before comparing")
	flagWorkers       = flag.Int("workers", 0, "Worker goroutines (0 keeps the configured value)")
	flagBatch         = flag.Int("batch", 0, "Vertices per parallel batch (0 keeps the configured value)")
	flagTicks         = flag.Int("ticks", -1, "Number of simulation ticks")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagRadius >= 0 {
		cfg.Deform.Radius = float32(*flagRadius)
	}
	if flagPower.set {
		cfg.Deform.Power = float32(flagPower.value)
	}
	if *flagSquaredRadius {
		cfg.Deform.RadiusMode = "squared"
	}
	if *flagWorkers > 0 {
		cfg.Deform.Workers = *flagWorkers
	}
	if *flagBatch > 0 {
		cfg.Deform.BatchSize = *flagBatch
	}
	if *flagTicks >= 0 {
		cfg.Simulation.Ticks = *flagTicks
	}
}

// optionalFloat is a float flag that remembers whether it was given, so any
// value including zero can override the config.
type optionalFloat struct {
	value float64
	set   bool
}

func optionalFloat64(name, usage string) *optionalFloat {
	f := &optionalFloat{}
	flag.Var(f, name, usage)
	return f
}

func (f *optionalFloat) String() string {
	if f == nil || !f.set {
		return ""
	}
	return strconv.FormatFloat(f.value, 'g', -1, 64)
}

func (f *optionalFloat) Set(s string) error {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	f.value = v
	f.set = true
	return nil
}
