package imgedit

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the file form of the engine options.
//
//	workers = 8
//	chunk_pixels = 16384
//	paint_mode = "non-destructive"
//	brush_cache_size = 32
//	log_level = "debug"
type Config struct {
	Workers        int       `toml:"workers"`
	ChunkPixels    int       `toml:"chunk_pixels"`
	PaintMode      PaintMode `toml:"paint_mode"`
	BrushCacheSize int       `toml:"brush_cache_size"`
	LogLevel       string    `toml:"log_level"`
}

// DefaultConfig returns the configuration NewEngine uses without options.
func DefaultConfig() Config {
	return Config{
		ChunkPixels:    DefaultChunkPixels,
		PaintMode:      Destructive,
		BrushCacheSize: DefaultBrushCacheSize,
		LogLevel:       "info",
	}
}

// LoadConfig reads a TOML config file. Keys missing from the file keep
// their DefaultConfig values; unknown keys are an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("imgedit: read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("imgedit: config %s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, nil
}

// Options converts the config into engine options.
func (c Config) Options() []Option {
	return []Option{
		WithWorkers(c.Workers),
		WithChunkPixels(c.ChunkPixels),
		WithPaintMode(c.PaintMode),
		WithBrushes(NewBrushSet(c.BrushCacheSize)),
	}
}

// Level parses LogLevel. Unknown or empty values yield slog.LevelInfo.
func (c Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo
	}
	return l
}
