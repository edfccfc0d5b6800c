package company

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jcarlier/veillepme/internal/keywords"
)

// LoadCSV reads a company list from a CSV file with a header row.
// Recognized columns (case/accent-insensitive): nom, siret, commune,
// code_postal, site_web, secteur_naf. Rows with an empty name are skipped.
func LoadCSV(path string) ([]Company, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open company file: %w", err)
	}
	defer f.Close()

	companies, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return companies, nil
}

// ReadCSV parses companies from CSV data. Both comma and semicolon
// separators are accepted, semicolon being common in French spreadsheet
// exports.
func ReadCSV(r io.Reader) ([]Company, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read data: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.Comma = detectSeparator(data)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[normalizeColumn(name)] = i
	}
	if _, ok := cols["nom"]; !ok {
		return nil, fmt.Errorf("missing required column 'nom'")
	}

	var companies []Company
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}

		field := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		c := Company{
			Nom:        field("nom"),
			SIRET:      field("siret"),
			Commune:    field("commune"),
			CodePostal: field("code_postal"),
			SiteWeb:    field("site_web"),
			SecteurNAF: field("secteur_naf"),
		}
		if c.Nom == "" {
			continue
		}
		companies = append(companies, c)
	}

	return companies, nil
}

func detectSeparator(data []byte) rune {
	firstLine := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		firstLine = data[:i]
	}
	if bytes.Count(firstLine, []byte(";")) > bytes.Count(firstLine, []byte(",")) {
		return ';'
	}
	return ','
}

func normalizeColumn(name string) string {
	name = keywords.Normalize(name)
	return strings.ReplaceAll(name, " ", "_")
}
