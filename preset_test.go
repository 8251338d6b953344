package headers

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadPreset(t *testing.T) {
	dir, err := ioutil.TempDir("", "headers.TestLoadPreset")
	assert.NoError(t, err)
	assert.NotEmpty(t, dir)
	defer os.RemoveAll(dir)

	for fn, content := range map[string]string{
		"preset.toml": `User-Agent = "headers"` + "\n" +
			`Accept = ["text/html", "application/json"]` + "\n" +
			`Empty = []` + "\n" +
			`Number = 42`,
		"preset.yaml": `User-Agent: headers` + "\n" +
			`Accept:` + "\n" +
			`  - text/html` + "\n" +
			`  - application/json` + "\n" +
			`Empty: []` + "\n" +
			`Number: 42`,
		"preset.json": `{
			"User-Agent": "headers",
			"Accept": ["text/html", "application/json"],
			"Empty": [],
			"Number": 42
		}`,
		"preset.ini": `User-Agent = headers` + "\n" +
			`Accept = text/html` + "\n" +
			`Accept = application/json`,
	} {
		filename := filepath.Join(dir, fn)
		assert.NoError(t, ioutil.WriteFile(
			filename,
			[]byte(content),
			os.ModePerm,
		))

		h, err := LoadPreset(filename)
		assert.NoError(t, err, fn)
		assert.Equal(t, "headers", h.First("user-agent"), fn)
		assert.Equal(
			t,
			[]string{"text/html", "application/json"},
			h.GetAll("accept"),
			fn,
		)
		assert.False(t, h.Has("empty"), fn)
		assert.False(t, h.Has("number"), fn)
		assert.Equal(t, 2, h.Len(), fn)
	}

	_, err = LoadPreset(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	filename := filepath.Join(dir, "preset.xml")
	assert.NoError(t, ioutil.WriteFile(filename, []byte("<a/>"), os.ModePerm))

	_, err = LoadPreset(filename)
	assert.Error(t, err)
}

func TestOpenPreset(t *testing.T) {
	dir, err := ioutil.TempDir("", "headers.TestOpenPreset")
	assert.NoError(t, err)
	assert.NotEmpty(t, dir)
	defer os.RemoveAll(dir)

	filename := filepath.Join(dir, "preset.json")

	_, err = OpenPreset(filename)
	assert.Error(t, err)

	assert.NoError(t, ioutil.WriteFile(
		filename,
		[]byte(`{"X-Version": "1"}`),
		os.ModePerm,
	))

	p, err := OpenPreset(filename)
	assert.NoError(t, err)
	assert.NotNil(t, p)
	defer p.Close()

	assert.Equal(t, "1", p.Headers().First("x-version"))
	assert.NoError(t, p.Err())

	h := p.Headers()
	h.Set("x-version", "mutated")
	assert.Equal(t, "1", p.Headers().First("x-version"))

	replace := func(content string) {
		tmp := filepath.Join(dir, "preset.tmp")
		assert.NoError(t, ioutil.WriteFile(
			tmp,
			[]byte(content),
			os.ModePerm,
		))
		assert.NoError(t, os.Rename(tmp, filename))
	}

	replace(`{"X-Version": "2", "X-Extra": ["a", "b"]}`)
	waitFor(t, func() bool {
		return p.Headers().First("x-version") == "2"
	})
	assert.Equal(t, []string{"a", "b"}, p.Headers().GetAll("x-extra"))
	assert.NoError(t, p.Err())

	replace(`{`)
	waitFor(t, func() bool {
		return p.Err() != nil
	})
	assert.Equal(t, "2", p.Headers().First("x-version"))

	assert.NoError(t, p.Close())
}

// waitFor polls the cond until it holds or a few seconds have passed.
func waitFor(t *testing.T, cond func() bool) {
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met in time")
		}

		time.Sleep(10 * time.Millisecond)
	}
}
