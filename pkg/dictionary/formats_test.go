package dictionary

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var wantRecords = []Record{
	NewRecord("nahuatl", "chichi", "espanol", "perro, can"),
	NewRecord("nahuatl", "atl", "espanol", "agua"),
}

func TestDetectFileFormat(t *testing.T) {
	tests := []struct {
		name     string
		expected FileFormat
	}{
		{"nahuatl.JSON", FormatJSON},
		{"maya.json", FormatJSON},
		{"otomi.yml", FormatYAML},
		{"otomi.YAML", FormatYAML},
		{"zapoteco.csv", FormatCSV},
		{"mixteco.mpk", FormatMsgpack},
		{"https://example.org/data/mixteco.msgpack?rev=2", FormatMsgpack},
	}
	for _, tt := range tests {
		format, err := DetectFileFormat(tt.name)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.expected, format, tt.name)
	}

	_, err := DetectFileFormat("notes.txt")
	assert.Error(t, err)
	assert.Contains(t, DataPatterns(), "*.JSON")
}

func TestDecodeFormats(t *testing.T) {
	var packed bytes.Buffer
	require.NoError(t, EncodeMsgpack(&packed, wantRecords))

	tests := []struct {
		description string
		format      FileFormat
		input       string
	}{
		{
			description: "json",
			format:      FormatJSON,
			input:       `[{"nahuatl": "chichi", "espanol": "perro, can"}, {"nahuatl": "atl", "espanol": "agua"}]`,
		},
		{
			description: "yaml",
			format:      FormatYAML,
			input:       "- nahuatl: chichi\n  espanol: perro, can\n- nahuatl: atl\n  espanol: agua\n",
		},
		{
			description: "csv with bom",
			format:      FormatCSV,
			input:       "\ufeffnahuatl,espanol\nchichi,\"perro, can\"\natl,agua\n",
		},
		{
			description: "msgpack",
			format:      FormatMsgpack,
			input:       packed.String(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			records, err := Decode(strings.NewReader(tt.input), tt.format)
			require.NoError(t, err)
			assert.Equal(t, wantRecords, records)
		})
	}
}

func TestDecodeYAMLNull(t *testing.T) {
	records, err := Decode(strings.NewReader("- espanol: agua\n  maya: ~\n"), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, []Record{NewRecord("espanol", "agua", "maya", "")}, records)

	_, err = Decode(strings.NewReader("espanol: agua\n"), FormatYAML)
	assert.Error(t, err)
}

func TestDecodeCSVShortRow(t *testing.T) {
	records, err := Decode(strings.NewReader("espanol,maya,notas\nagua,ha'\n"), FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, []Record{NewRecord("espanol", "agua", "maya", "ha'")}, records)
}

func TestLoaderFetchFile(t *testing.T) {
	dir := t.TempDir()
	data := `[{"espanol": "perro, can", "nahuatl": "chichi"}]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nahuatl.JSON"), []byte(data), 0o644))

	loader := NewLoader(dir)
	records, err := loader.Fetch(context.Background(), "nahuatl.JSON")
	require.NoError(t, err)
	require.Len(t, records, 1)

	d, err := Load(records, "")
	require.NoError(t, err)
	got, ok := d.Lookup("can", SpanishToIndigenous)
	assert.True(t, ok)
	assert.Equal(t, "chichi", got)

	_, err = loader.Fetch(context.Background(), "absent.json")
	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.True(t, loadErr.Unreachable())
}

func TestLoaderErrorStages(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte(`[{"espanol": "pe`), 0o644))
	loader := NewLoader(dir)

	tests := []struct {
		source      string
		stage       LoadStage
		unreachable bool
	}{
		{"absent.json", StageFetch, true},
		{"broken.json", StageDecode, false},
		{"notes.txt", StageFormat, false},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			_, err := loader.Fetch(context.Background(), tt.source)
			var loadErr *LoadError
			require.True(t, errors.As(err, &loadErr))
			assert.Equal(t, tt.stage, loadErr.Stage)
			assert.Equal(t, tt.unreachable, loadErr.Unreachable())
		})
	}
}

func TestLoaderFetchHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/maya.yaml" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("- espanol: perro\n  maya: peek'\n"))
	}))
	defer srv.Close()

	loader := NewLoader("").WithClient(srv.Client())
	records, err := loader.Fetch(context.Background(), srv.URL+"/maya.yaml")
	require.NoError(t, err)
	assert.Equal(t, []Record{NewRecord("espanol", "perro", "maya", "peek'")}, records)

	_, err = loader.Fetch(context.Background(), srv.URL+"/otomi.yaml")
	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Contains(t, loadErr.Error(), "404")
	assert.True(t, loadErr.Unreachable())
}

func TestLoaderResolve(t *testing.T) {
	loader := NewLoader("/data")
	assert.Equal(t, filepath.Join("/data", "maya.json"), loader.Resolve("maya.json"))
	assert.Equal(t, "/tmp/maya.json", loader.Resolve("/tmp/maya.json"))
	assert.Equal(t, "http://x/maya.json", loader.Resolve("http://x/maya.json"))
}
