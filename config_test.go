package headers

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	defer func(le bool, ll LoggerLevel, lf string, cmb int) {
		LoggerEnabled = le
		LoggerLowestLevel = ll
		LoggerFormat = lf
		CacheMaxBytes = cmb
		Config = map[string]interface{}{}
	}(LoggerEnabled, LoggerLowestLevel, LoggerFormat, CacheMaxBytes)

	dir, err := ioutil.TempDir("", "headers.TestLoadConfig")
	assert.NoError(t, err)
	assert.NotEmpty(t, dir)
	defer os.RemoveAll(dir)

	for fn, content := range map[string]string{
		"config.toml": `logger_enabled = false` + "\n" +
			`logger_lowest_level = "error"` + "\n" +
			`logger_format = "{{.level}}"` + "\n" +
			`cache_max_bytes = 1024` + "\n" +
			`foo = "bar"`,
		"config.yaml": `logger_enabled: false` + "\n" +
			`logger_lowest_level: "error"` + "\n" +
			`logger_format: "{{.level}}"` + "\n" +
			`cache_max_bytes: 1024` + "\n" +
			`foo: "bar"`,
		"config.json": `{
			"logger_enabled": false,
			"logger_lowest_level": "error",
			"logger_format": "{{.level}}",
			"cache_max_bytes": 1024,
			"foo": "bar"
		}`,
		"config.ini": `logger_enabled = false` + "\n" +
			`logger_lowest_level = error` + "\n" +
			`logger_format = {{.level}}` + "\n" +
			`cache_max_bytes = 1024` + "\n" +
			`foo = bar`,
	} {
		LoggerEnabled = true
		LoggerLowestLevel = LoggerLevelInfo
		LoggerFormat = ""
		CacheMaxBytes = 0

		filename := filepath.Join(dir, fn)
		assert.NoError(t, ioutil.WriteFile(
			filename,
			[]byte(content),
			os.ModePerm,
		))

		assert.NoError(t, LoadConfig(filename), fn)
		assert.False(t, LoggerEnabled, fn)
		assert.Equal(t, LoggerLevelError, LoggerLowestLevel, fn)
		assert.Equal(t, "{{.level}}", LoggerFormat, fn)
		assert.Equal(t, 1024, CacheMaxBytes, fn)
		assert.Equal(t, "bar", Config["foo"], fn)
	}
}

func TestLoadConfigPartial(t *testing.T) {
	defer func(le bool, cmb int) {
		LoggerEnabled = le
		CacheMaxBytes = cmb
		Config = map[string]interface{}{}
	}(LoggerEnabled, CacheMaxBytes)

	dir, err := ioutil.TempDir("", "headers.TestLoadConfigPartial")
	assert.NoError(t, err)
	defer os.RemoveAll(dir)

	filename := filepath.Join(dir, "config.toml")
	assert.NoError(t, ioutil.WriteFile(
		filename,
		[]byte(`cache_max_bytes = 2048`),
		os.ModePerm,
	))

	LoggerEnabled = false
	assert.NoError(t, LoadConfig(filename))
	assert.False(t, LoggerEnabled)
	assert.Equal(t, 2048, CacheMaxBytes)
}

func TestLoadConfigErrors(t *testing.T) {
	dir, err := ioutil.TempDir("", "headers.TestLoadConfigErrors")
	assert.NoError(t, err)
	defer os.RemoveAll(dir)

	assert.Error(t, LoadConfig(filepath.Join(dir, "missing.toml")))

	for fn, content := range map[string]string{
		"config.txt":  `foo`,
		"bad.json":    `{`,
		"bad.toml":    `foo = `,
		"level.toml":  `logger_lowest_level = "verbose"`,
		"enabled.yml": `logger_enabled: "maybe"`,
	} {
		filename := filepath.Join(dir, fn)
		assert.NoError(t, ioutil.WriteFile(
			filename,
			[]byte(content),
			os.ModePerm,
		))

		assert.Error(t, LoadConfig(filename), fn)
	}
}
