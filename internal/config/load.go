package config

import (
	"flag"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file
// 3. Project config file
// 4. Environment variables
// 5. CLI flags
//
// Config flags are registered on fs, which is parsed with args. Remaining
// positional arguments are available from fs.Args().
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cws, err := LoadWithSources(fs, args)
	if err != nil {
		return nil, err
	}
	return cws.Config, nil
}

// LoadWithSources loads configuration and tracks the source of each value.
func LoadWithSources(fs *flag.FlagSet, args []string) (*WithSources, error) {
	cfg := Default()
	cws := &WithSources{
		Config:  cfg,
		Sources: make(map[string]Source),
	}
	for _, f := range fields() {
		cws.Sources[f.key] = SourceDefault
	}

	// 2. User config file
	if path := findUserConfigFile(); path != "" {
		if err := loadConfigFile(cws, path, SourceUserFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", path, err)
		}
	}

	// 3. Project config file (overrides user config)
	if path := findProjectConfigFile(); path != "" {
		if err := loadConfigFile(cws, path, SourceProjFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", path, err)
		}
	}

	// 4. Environment
	if err := loadFromEnv(cws); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	// 5. CLI flags
	if err := parseFlags(cws, fs, args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	cfg.FixtureFile = ExpandPath(cfg.FixtureFile)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cws, nil
}

// loadConfigFile decodes path over the current config. Only keys present
// in the file change their source.
func loadConfigFile(cws *WithSources, path string, source Source) error {
	md, err := toml.DecodeFile(path, cws.Config)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown keys: %v", undecoded)
	}
	for _, f := range fields() {
		if md.IsDefined(f.key) {
			cws.Sources[f.key] = source
		}
	}
	cws.Files = append(cws.Files, path)
	return nil
}

// loadFromEnv overrides config from CHORETRACKER_* environment variables.
func loadFromEnv(cws *WithSources) error {
	for _, f := range fields() {
		v, ok := os.LookupEnv(f.env())
		if !ok || v == "" {
			continue
		}
		if err := f.setString(cws.Config, v); err != nil {
			return fmt.Errorf("%s: %w", f.env(), err)
		}
		cws.Sources[f.key] = SourceEnv
	}
	return nil
}

// parseFlags defines a flag per field on fs and parses args.
func parseFlags(cws *WithSources, fs *flag.FlagSet, args []string) error {
	if fs == nil {
		fs = flag.NewFlagSet("choretracker", flag.ContinueOnError)
	}
	byFlag := make(map[string]field)
	for _, f := range fields() {
		byFlag[f.flag()] = f
		switch p := f.ptr(cws.Config).(type) {
		case *string:
			fs.StringVar(p, f.flag(), *p, f.usage)
		case *int:
			fs.IntVar(p, f.flag(), *p, f.usage)
		case *bool:
			fs.BoolVar(p, f.flag(), *p, f.usage)
		case *Backend:
			fs.Func(f.flag(), f.usage, func(s string) error {
				return f.setString(cws.Config, s)
			})
		}
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	fs.Visit(func(fl *flag.Flag) {
		if f, ok := byFlag[fl.Name]; ok {
			cws.Sources[f.key] = SourceFlag
		}
	})
	return nil
}
