package headers

import (
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// CacheMaxBytes is the default maximum size in bytes of a `Cache` built by
// the `NewCache` with a non-positive max bytes.
//
// It's called "cache_max_bytes" in the config file.
var CacheMaxBytes = 32 << 20

// Config is the map that parsing from the last config file loaded by the
// `LoadConfig`. You can use it to access the values in the config file.
var Config = map[string]interface{}{}

// config is the typed form of the known keys of a config file.
type config struct {
	LoggerEnabled     *bool        `mapstructure:"logger_enabled"`
	LoggerLowestLevel *LoggerLevel `mapstructure:"logger_lowest_level"`
	LoggerFormat      *string      `mapstructure:"logger_format"`
	CacheMaxBytes     *int         `mapstructure:"cache_max_bytes"`
}

// LoadConfig loads the config file found in the filename into the
// package-level settings. The format of the file is chosen by its extension,
// see the `LoadPreset` for the supported ones. Keys missing from the file
// leave their settings untouched.
func LoadConfig(filename string) error {
	m, err := decodeFile(filename)
	if err != nil {
		return err
	}

	c := config{}
	d, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       loggerLevelHook,
		WeaklyTypedInput: true,
		Result:           &c,
	})
	if err != nil {
		return err
	}

	if err := d.Decode(m); err != nil {
		return err
	}

	if c.LoggerEnabled != nil {
		LoggerEnabled = *c.LoggerEnabled
	}

	if c.LoggerLowestLevel != nil {
		LoggerLowestLevel = *c.LoggerLowestLevel
	}

	if c.LoggerFormat != nil {
		LoggerFormat = *c.LoggerFormat
	}

	if c.CacheMaxBytes != nil {
		CacheMaxBytes = *c.CacheMaxBytes
	}

	Config = m

	DEBUG("headers: config loaded", map[string]interface{}{
		"file": filename,
	})

	return nil
}

// loggerLevelHook decodes strings like "warn" into `LoggerLevel`s.
func loggerLevelHook(
	from reflect.Type,
	to reflect.Type,
	data interface{},
) (interface{}, error) {
	if from.Kind() != reflect.String ||
		to != reflect.TypeOf(LoggerLevel(0)) {
		return data, nil
	}

	return parseLoggerLevel(data.(string))
}
