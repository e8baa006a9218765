package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/lineage/pkg/core/family"
	"github.com/matzehuels/lineage/pkg/errors"
)

// =============================================================================
// Chart Serialization API
// =============================================================================

// ChartFormat returns the document format implied by the extension of path:
// [FormatTOML] for ".toml", [FormatJSON] otherwise.
func ChartFormat(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatJSON
}

// ReadChartFile reads a chart document, choosing the decoder by extension.
func ReadChartFile(path string) (family.Data, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return family.Data{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "chart file %s", path)
		}
		return family.Data{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadChart(f, ChartFormat(path))
}

// ReadChart decodes a chart document in the given format from r.
func ReadChart(r io.Reader, format string) (family.Data, error) {
	var data family.Data
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&data); err != nil {
			return family.Data{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode JSON chart")
		}
	case FormatTOML:
		if _, err := toml.NewDecoder(r).Decode(&data); err != nil {
			return family.Data{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode TOML chart")
		}
	default:
		return family.Data{}, errors.New(errors.ErrCodeInvalidFormat, "unsupported chart format %q", format)
	}
	return data, nil
}

// UnmarshalChart decodes chart bytes in the given format.
func UnmarshalChart(raw []byte, format string) (family.Data, error) {
	return ReadChart(bytes.NewReader(raw), format)
}

// MarshalChart encodes a chart document as indented JSON.
func MarshalChart(d family.Data) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteChart(d, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteChart writes a chart document as indented JSON to w.
func WriteChart(d family.Data, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
