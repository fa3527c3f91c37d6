// Package corpus loads the quote collection the matcher ranks against.
//
// A default collection is compiled into the binary. An external file can
// replace it; the file is a list of {"text": ...} objects in JSON or YAML.
// Any problem with the file is fatal: there is no fallback to the default.
package corpus

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jsamuelsen/headline-quoter/internal/domain"
)

//go:embed quotes.json
var embeddedQuotes []byte

// Format is the encoding of a quote file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// record is one entry of a quote file. Author is accepted and ignored.
// record is one entry of a quote file. Other keys, such as author, are
// ignored.
type record struct {
	Text string `json:"text" yaml:"text"`
}

// Default returns the compiled-in corpus.
func Default() (*domain.Corpus, error) {
	return Parse("embedded quotes", embeddedQuotes, FormatJSON)
}

// Load reads the corpus at path, or the compiled-in corpus when path is empty.
func Load(path string) (*domain.Corpus, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}

	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading quote file: %w", err)
	}

	return Parse(path, data, format)
}

// FormatOf picks the decoder from the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", domain.NewValidationError("corpus.path", "must end in .json, .yaml or .yml")
	}
}

// Parse decodes data into a corpus, keeping file order.
// Quote text is kept byte for byte. Entries with blank text are rejected;
// so is an empty list.
func Parse(source string, data []byte, format Format) (*domain.Corpus, error) {
	var records []record

	var err error

	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &records)
	case FormatYAML:
		err = yaml.Unmarshal(data, &records)
	default:
		return nil, fmt.Errorf("unsupported quote file format %q", format)
	}

	if err != nil {
		return nil, domain.NewMalformedError(source, err.Error())
	}

	quotes := make([]domain.Quote, 0, len(records))

	for i, r := range records {
		if strings.TrimSpace(r.Text) == "" {
			return nil, domain.NewMalformedError(source, fmt.Sprintf("entry %d has no text", i))
		}

		quotes = append(quotes, domain.Quote{Text: r.Text})
	}

	corpus, err := domain.NewCorpus(quotes)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}

	return corpus, nil
}
