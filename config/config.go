// Package config loads and validates the pipeline's configuration: store
// locations, scope filters, movement costs, worker count, and logging
// options. Values cascade defaults -> optional config file -> environment
// variables (HPAGEN_ prefix) -> command-line flags, following the same
// viper.New()-singleton pattern the wider corpus uses for layered config.
package config

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ChunkRange bounds scope to a rectangle of chunks: a tile's chunk is
// (x>>6, y>>6); the range is inclusive on all four bounds.
type ChunkRange struct {
	XMin, XMax, ZMin, ZMax int32
}

// Contains reports whether the chunk containing (x,y) lies in the range.
func (r *ChunkRange) Contains(x, y int32) bool {
	if r == nil {
		return true
	}
	cx, cz := x>>6, y>>6
	return cx >= r.XMin && cx <= r.XMax && cz >= r.ZMin && cz <= r.ZMax
}

// ParseChunkRange parses the "xmin:xmax,zmin:zmax" wire form used by the
// --chunk-range flag and HPAGEN_CHUNK_RANGE environment variable.
func ParseChunkRange(s string) (*ChunkRange, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("config: chunk-range must be \"xmin:xmax,zmin:zmax\", got %q", s)
	}
	xPair := strings.SplitN(parts[0], ":", 2)
	zPair := strings.SplitN(parts[1], ":", 2)
	if len(xPair) != 2 || len(zPair) != 2 {
		return nil, fmt.Errorf("config: chunk-range must be \"xmin:xmax,zmin:zmax\", got %q", s)
	}
	xmin, err := strconv.Atoi(xPair[0])
	if err != nil {
		return nil, fmt.Errorf("config: bad xmin in chunk-range %q: %w", s, err)
	}
	xmax, err := strconv.Atoi(xPair[1])
	if err != nil {
		return nil, fmt.Errorf("config: bad xmax in chunk-range %q: %w", s, err)
	}
	zmin, err := strconv.Atoi(zPair[0])
	if err != nil {
		return nil, fmt.Errorf("config: bad zmin in chunk-range %q: %w", s, err)
	}
	zmax, err := strconv.Atoi(zPair[1])
	if err != nil {
		return nil, fmt.Errorf("config: bad zmax in chunk-range %q: %w", s, err)
	}
	return &ChunkRange{XMin: int32(xmin), XMax: int32(xmax), ZMin: int32(zmin), ZMax: int32(zmax)}, nil
}

// ParsePlanes parses a comma-separated list of plane ids; an empty string
// means "all planes" (nil slice).
func ParsePlanes(s string) ([]int32, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	fields := strings.Split(s, ",")
	out := make([]int32, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("config: bad plane id %q: %w", f, err)
		}
		out = append(out, int32(v))
	}
	return out, nil
}

// Scope is the filter applied uniformly by every stage: which planes to
// touch and which chunk rectangle within them. A nil Planes means every
// plane present in the input store; a nil ChunkRange means unbounded.
type Scope struct {
	Planes     []int32
	ChunkRange *ChunkRange
}

// IncludesPlane reports whether plane is in scope.
func (s Scope) IncludesPlane(plane int32) bool {
	if s.Planes == nil {
		return true
	}
	for _, p := range s.Planes {
		if p == plane {
			return true
		}
	}
	return false
}

// IncludesTile reports whether (x,y,plane) is in scope.
func (s Scope) IncludesTile(x, y, plane int32) bool {
	return s.IncludesPlane(plane) && s.ChunkRange.Contains(x, y)
}

// Config is the fully resolved set of tunables for one pipeline invocation.
type Config struct {
	TilesDBPath string
	OutDBPath   string
	Scope       Scope
	Threads     int
	DryRun      bool
	StorePaths  bool

	MovementCostStraight int64
	MovementCostDiagonal int64

	// AllowDiagonals, AllowCornerCut and UnitRadius seed the movement_policy
	// singleton on a fresh output store; once saved, later invocations read
	// the persisted value instead (see store.MovementPolicyStore).
	AllowDiagonals bool
	AllowCornerCut bool
	UnitRadius     int

	LogLevel  string
	LogFormat string
}

// defaults mirrors the values documented in SPEC_FULL.md §10.1 and the
// meta defaults in §6.
func defaults(v *viper.Viper) {
	v.SetDefault("tiles_db", "tiles.db")
	v.SetDefault("out_db", "out.db")
	v.SetDefault("planes", "")
	v.SetDefault("chunk_range", "")
	v.SetDefault("threads", runtime.NumCPU())
	v.SetDefault("dry_run", false)
	v.SetDefault("store_paths", false)
	v.SetDefault("movement_cost_straight", 1024)
	v.SetDefault("movement_cost_diagonal", 1448)
	v.SetDefault("allow_diagonals", true)
	v.SetDefault("allow_corner_cut", false)
	v.SetDefault("unit_radius", 1)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
}

// Load builds a Viper instance layering defaults, an optional config file,
// HPAGEN_-prefixed environment variables, and flags bound from fs (if
// non-nil), then resolves it into a Config.
func Load(configFile string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	defaults(v)

	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("hpagen")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/hpagen")
	}
	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, fmt.Errorf("config: reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("HPAGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if fs != nil {
		// Flags use dash-case ("tiles-db") while every other layer (defaults,
		// config file, HPAGEN_ env vars) uses snake_case ("tiles_db"); bind
		// each flag explicitly under its snake_case key instead of the bulk
		// BindPFlags, which would key flags under their dashed names and
		// silently never override the snake_case defaults.
		for _, dashed := range []string{
			"tiles-db", "out-db", "planes", "chunk-range", "threads",
			"dry-run", "store-paths", "log-level", "log-format",
		} {
			if flag := fs.Lookup(dashed); flag != nil {
				key := strings.ReplaceAll(dashed, "-", "_")
				if err := v.BindPFlag(key, flag); err != nil {
					return nil, fmt.Errorf("config: binding flag %s: %w", dashed, err)
				}
			}
		}
	}

	planes, err := ParsePlanes(v.GetString("planes"))
	if err != nil {
		return nil, err
	}
	chunkRange, err := ParseChunkRange(v.GetString("chunk_range"))
	if err != nil {
		return nil, err
	}

	return &Config{
		TilesDBPath: v.GetString("tiles_db"),
		OutDBPath:   v.GetString("out_db"),
		Scope:       Scope{Planes: planes, ChunkRange: chunkRange},
		Threads:     v.GetInt("threads"),
		DryRun:      v.GetBool("dry_run"),
		StorePaths:  v.GetBool("store_paths"),

		MovementCostStraight: v.GetInt64("movement_cost_straight"),
		MovementCostDiagonal: v.GetInt64("movement_cost_diagonal"),

		AllowDiagonals: v.GetBool("allow_diagonals"),
		AllowCornerCut: v.GetBool("allow_corner_cut"),
		UnitRadius:     v.GetInt("unit_radius"),

		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),
	}, nil
}
