package settings

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/oomph-ac/stalk/oerror"
	"github.com/pelletier/go-toml"
)

// Settings contains everything that can be configured for stalk.
type Settings struct {
	// MaxHeight is the height a stack stops growing at.
	MaxHeight int `toml:"max-height" comment:"Height at which stacks stop growing."`
	// GrowthIntervalTicks is the number of ticks between two sampler passes.
	GrowthIntervalTicks int64 `toml:"growth-interval-ticks" comment:"Ticks between two passes deciding which plants grow."`
	// GrowthChance is the probability that a plant is picked to grow in a sampler pass.
	GrowthChance float64 `toml:"growth-chance" comment:"Chance for each plant to grow in a pass, between 0 and 1."`
	// BlocksPerTick is the maximum number of plants grown in a single tick.
	BlocksPerTick int `toml:"blocks-per-tick" comment:"Maximum number of plants grown per tick."`
	// Species lists the plants that are tracked.
	Species []string `toml:"species" comment:"Plants to grow: sugar_cane, cactus."`
	// PreScan enables tracking plants that already exist in loaded chunks when the plugin is enabled.
	PreScan bool `toml:"pre-scan" comment:"Track plants already present in loaded chunks on startup."`
	// Seed seeds the random source. Zero picks a seed from the clock.
	Seed int64 `toml:"seed" comment:"Random seed, 0 for a random one."`
	// World names the world the plugin runs in. It diversifies sampling between worlds that share a seed.
	World string `toml:"world"`
	// SentryDSN enables crash reporting to Sentry if not empty.
	SentryDSN string `toml:"sentry-dsn"`
}

// file mirrors Settings with pointers, so that keys missing from a settings file can be told apart
// from zero values.
type file struct {
	MaxHeight           *int     `toml:"max-height"`
	GrowthIntervalTicks *int64   `toml:"growth-interval-ticks"`
	GrowthChance        *float64 `toml:"growth-chance"`
	BlocksPerTick       *int     `toml:"blocks-per-tick"`
	Species             []string `toml:"species"`
	PreScan             *bool    `toml:"pre-scan"`
	Seed                *int64   `toml:"seed"`
	World               *string  `toml:"world"`
	SentryDSN           *string  `toml:"sentry-dsn"`
}

// KnownSpecies are the species names accepted in the species list.
var KnownSpecies = []string{"sugar_cane", "cactus"}

// DefaultSettings returns the default settings.
func DefaultSettings() Settings {
	return Settings{
		MaxHeight:           32,
		GrowthIntervalTicks: 4096,
		GrowthChance:        0.33,
		BlocksPerTick:       50,
		Species:             []string{"sugar_cane"},
		PreScan:             true,
		World:               "overworld",
	}
}

// SaveDefault will create and save the default settings file. If the file already exists, it will
// return an error.
func SaveDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return oerror.New("settings file %s already exists", path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return oerror.New("stat settings file: %w", err)
	}
	return Save(path, DefaultSettings())
}

// Save encodes the settings passed to the file at path, replacing it if it exists.
func Save(path string, s Settings) error {
	data, err := toml.Marshal(s)
	if err != nil {
		return oerror.New("failed encoding settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return oerror.New("failed writing settings file: %w", err)
	}
	return nil
}

// Load will load the settings from the file at path. Keys missing from the file keep their default
// value. Load returns an error wrapping os.ErrNotExist if the file does not exist.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, oerror.New("error reading settings: %w", err)
	}
	return Decode(data)
}

// LoadOrCreate loads the settings file at path, writing the defaults to it first if it does not
// exist yet.
func LoadOrCreate(path string) (Settings, error) {
	if err := SaveDefault(path); err != nil {
		if _, statErr := os.Stat(path); statErr != nil {
			return Settings{}, err
		}
	}
	return Load(path)
}

// Decode decodes TOML encoded settings on top of the defaults.
func Decode(data []byte) (Settings, error) {
	var f file
	if err := toml.Unmarshal(data, &f); err != nil {
		return Settings{}, oerror.New("error decoding settings: %w", err)
	}

	s := DefaultSettings()
	if f.MaxHeight != nil {
		s.MaxHeight = *f.MaxHeight
	}
	if f.GrowthIntervalTicks != nil {
		s.GrowthIntervalTicks = *f.GrowthIntervalTicks
	}
	if f.GrowthChance != nil {
		s.GrowthChance = *f.GrowthChance
	}
	if f.BlocksPerTick != nil {
		s.BlocksPerTick = *f.BlocksPerTick
	}
	if f.Species != nil {
		s.Species = f.Species
	}
	if f.PreScan != nil {
		s.PreScan = *f.PreScan
	}
	if f.Seed != nil {
		s.Seed = *f.Seed
	}
	if f.World != nil {
		s.World = *f.World
	}
	if f.SentryDSN != nil {
		s.SentryDSN = *f.SentryDSN
	}
	return s, nil
}

// Problems returns a description of every value that is outside its sane range. Such values are
// still used: a max height of zero or less stops all growth and a chance outside [0, 1] means
// never or always.
func (s Settings) Problems() []string {
	var problems []string
	if s.MaxHeight <= 0 {
		problems = append(problems, fmt.Sprintf("max-height %d is not positive, plants will not grow", s.MaxHeight))
	}
	if s.GrowthIntervalTicks <= 0 {
		problems = append(problems, fmt.Sprintf("growth-interval-ticks %d is not positive, sampling every tick", s.GrowthIntervalTicks))
	}
	if s.GrowthChance < 0 || s.GrowthChance > 1 {
		problems = append(problems, fmt.Sprintf("growth-chance %v is outside [0, 1]", s.GrowthChance))
	}
	if s.BlocksPerTick <= 0 {
		problems = append(problems, fmt.Sprintf("blocks-per-tick %d is not positive, plants will not grow", s.BlocksPerTick))
	}
	for _, name := range s.Species {
		if !slices.Contains(KnownSpecies, name) {
			problems = append(problems, fmt.Sprintf("unknown species %q", name))
		}
	}
	return problems
}
