package dictionary

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// FileFormat represents the encodings a dataset can come in
type FileFormat int

const (
	FormatUnknown FileFormat = iota
	FormatJSON
	FormatYAML
	FormatCSV
	FormatMsgpack
)

// FormatInfo contains metadata about a dataset file format
type FormatInfo struct {
	Format      FileFormat
	Description string
	Extensions  []string
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatJSON: {
		Format:      FormatJSON,
		Description: "JSON array of records",
		Extensions:  []string{".json"},
	},
	FormatYAML: {
		Format:      FormatYAML,
		Description: "YAML sequence of mappings",
		Extensions:  []string{".yaml", ".yml"},
	},
	FormatCSV: {
		Format:      FormatCSV,
		Description: "CSV with a header row",
		Extensions:  []string{".csv"},
	},
	FormatMsgpack: {
		Format:      FormatMsgpack,
		Description: "MessagePack array of maps",
		Extensions:  []string{".msgpack", ".mpk"},
	},
}

func (f FileFormat) String() string {
	if info, ok := supportedFormats[f]; ok {
		return strings.TrimPrefix(info.Extensions[0], ".")
	}
	return "unknown"
}

// DetectFileFormat picks the format from the file extension, case-insensitively
// (the bundled datasets are named like nahuatl.JSON). Query strings of URLs are ignored.
func DetectFileFormat(name string) (FileFormat, error) {
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		name = name[:i]
	}
	ext := strings.ToLower(path.Ext(name))
	for format, info := range supportedFormats {
		for _, e := range info.Extensions {
			if e == ext {
				return format, nil
			}
		}
	}
	return FormatUnknown, fmt.Errorf("unable to detect format for %s", name)
}

// GetFormatInfo returns information about a specific format
func GetFormatInfo(format FileFormat) (FormatInfo, bool) {
	info, exists := supportedFormats[format]
	return info, exists
}

// DataPatterns returns glob patterns matching every supported dataset file,
// in both lower and upper case extension.
func DataPatterns() []string {
	var patterns []string
	for _, format := range []FileFormat{FormatJSON, FormatYAML, FormatCSV, FormatMsgpack} {
		for _, ext := range supportedFormats[format].Extensions {
			patterns = append(patterns, "*"+ext, "*"+strings.ToUpper(ext))
		}
	}
	return patterns
}

// Decode reads every record of a dataset encoded as format.
func Decode(r io.Reader, format FileFormat) ([]Record, error) {
	switch format {
	case FormatJSON:
		return decodeJSON(r)
	case FormatYAML:
		return decodeYAML(r)
	case FormatCSV:
		return decodeCSV(r)
	case FormatMsgpack:
		return decodeMsgpack(r)
	}
	return nil, fmt.Errorf("unknown format: %v", format)
}

func decodeJSON(r io.Reader) ([]Record, error) {
	var records []Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	return records, nil
}

func decodeYAML(r io.Reader) ([]Record, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("decode yaml: line %d: dataset must be a sequence", root.Line)
	}

	records := make([]Record, 0, len(root.Content))
	for _, item := range root.Content {
		if item.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("decode yaml: line %d: record must be a mapping", item.Line)
		}
		rec := make(Record, 0, len(item.Content)/2)
		for i := 0; i+1 < len(item.Content); i += 2 {
			key, value := item.Content[i], item.Content[i+1]
			if value.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("decode yaml: line %d: field %q must be a scalar", value.Line, key.Value)
			}
			v := value.Value
			if value.Tag == "!!null" {
				v = ""
			}
			rec = append(rec, Field{Name: key.Value, Value: v})
		}
		records = append(records, rec)
	}
	return records, nil
}

func decodeCSV(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode csv header: %w", err)
	}
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	var records []Record
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode csv: %w", err)
		}
		rec := make(Record, 0, len(header))
		for i, name := range header {
			if i < len(row) {
				rec = append(rec, Field{Name: name, Value: row[i]})
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

func decodeMsgpack(r io.Reader) ([]Record, error) {
	dec := msgpack.NewDecoder(r)
	n, err := dec.DecodeArrayLen()
	if err != nil {
		return nil, fmt.Errorf("decode msgpack: %w", err)
	}
	if n < 0 {
		return nil, nil
	}

	records := make([]Record, 0, n)
	for i := 0; i < n; i++ {
		fields, err := dec.DecodeMapLen()
		if err != nil {
			return nil, fmt.Errorf("decode msgpack record %d: %w", i, err)
		}
		rec := make(Record, 0, max(fields, 0))
		for j := 0; j < fields; j++ {
			name, err := dec.DecodeString()
			if err != nil {
				return nil, fmt.Errorf("decode msgpack record %d key: %w", i, err)
			}
			raw, err := dec.DecodeInterface()
			if err != nil {
				return nil, fmt.Errorf("decode msgpack record %d field %q: %w", i, name, err)
			}
			value, err := scalarString(raw)
			if err != nil {
				return nil, fmt.Errorf("decode msgpack record %d field %q: %w", i, name, err)
			}
			rec = append(rec, Field{Name: name, Value: value})
		}
		records = append(records, rec)
	}
	return records, nil
}

// EncodeMsgpack writes records in the layout decodeMsgpack reads, preserving field order.
func EncodeMsgpack(w io.Writer, records []Record) error {
	enc := msgpack.NewEncoder(w)
	if err := enc.EncodeArrayLen(len(records)); err != nil {
		return err
	}
	for _, rec := range records {
		if err := enc.EncodeMapLen(len(rec)); err != nil {
			return err
		}
		for _, f := range rec {
			if err := enc.EncodeString(f.Name); err != nil {
				return err
			}
			if err := enc.EncodeString(f.Value); err != nil {
				return err
			}
		}
	}
	return nil
}
