package esop

import "github.com/mitchellh/mapstructure"

// Config controls the synthesis driver. Options arrive as a loosely-typed
// map (typically parsed from JSON) and are decoded over the defaults.
type Config struct {
	// MaximumCubes bounds the number of candidate product terms.
	MaximumCubes int `mapstructure:"maximum_cubes"`
	// DumpCNF writes each candidate constraint system to a .cnf file for
	// external inspection.
	DumpCNF bool `mapstructure:"dump_cnf"`
	// OneEsop stops at the first cover of minimal size instead of
	// enumerating all of them.
	OneEsop bool `mapstructure:"one_esop"`
}

func DefaultConfig() Config {
	return Config{
		MaximumCubes: 10,
		OneEsop:      true,
	}
}

func DecodeConfig(options map[string]any) (Config, error) {
	config := DefaultConfig()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &config,
	})
	if err != nil {
		return Config{}, err
	}
	if err := decoder.Decode(options); err != nil {
		return Config{}, err
	}
	return config, nil
}
