package samplelist

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	fastqcpipe "github.com/RPINerd/FastQC-Pipeline"
	"github.com/carbocation/pfx"
)

type Parser struct {
	// Delimiter separates columns; 0 means detect it from the file.
	Delimiter rune

	// Layout is nil when each line picks its own layout.
	Layout *Layout
}

func New(layout string) (*Parser, error) {
	if strings.EqualFold(layout, LayoutAuto) || layout == "" {
		return &Parser{}, nil
	}

	l, exists := Layouts[strings.ToUpper(layout)]
	if !exists {
		return nil, fmt.Errorf("Layout %s is not found. Valid layout names include: %s", layout, LayoutNames())
	}

	return NewWithLayout(l), nil
}

func NewWithLayout(layout Layout) *Parser {
	return &Parser{Layout: &layout}
}

func (p *Parser) layoutFor(row []string) Layout {
	if p.Layout != nil {
		return *p.Layout
	}

	if len(row) == 1 {
		return Layouts["SIMPLE"]
	}

	return Layouts["EXTENDED"]
}

// ParseRow converts one record of the sample list into a Sample. Fields are
// trimmed of surrounding whitespace.
func (p *Parser) ParseRow(row []string) (Sample, error) {
	layout := p.layoutFor(row)

	field := func(col int) string {
		if col < 0 || col >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[col])
	}

	s := Sample{
		ID:  field(layout.ColID),
		Dir: field(layout.ColDir),
	}
	if s.ID == "" {
		return s, fmt.Errorf("no sample identifier in column %d", layout.ColID+1)
	}

	if lanes := field(layout.ColLanes); lanes != "" {
		n, err := strconv.Atoi(lanes)
		if err != nil || n < 0 {
			return s, fmt.Errorf("sample %s: lane count %q is not a non-negative integer", s.ID, lanes)
		}
		s.Lanes = n
	}

	reads, err := ParseReads(field(layout.ColReads))
	if err != nil {
		return s, fmt.Errorf("sample %s: %w", s.ID, err)
	}
	s.Reads = reads

	return s, nil
}

// Read parses every sample in r. Lines starting with # and blank lines are
// skipped. Sample identifiers must be unique.
func (p *Parser) Read(r io.Reader) ([]Sample, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, pfx.Err(err)
	}

	delim := p.Delimiter
	if delim == 0 {
		delim = detectDelimiter(data)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delim
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	samples := make([]Sample, 0)
	seen := make(map[string]int)

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, pfx.Err(err)
		}

		line, _ := reader.FieldPos(0)

		if isBlank(row) {
			continue
		}

		if p.Layout != nil && len(trimTrailingEmpty(row)) > p.Layout.width() {
			return nil, fmt.Errorf("line %d: expected at most %d columns, found %d", line, p.Layout.width(), len(row))
		}

		s, err := p.ParseRow(trimTrailingEmpty(row))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		if prev, exists := seen[s.ID]; exists {
			return nil, fmt.Errorf("line %d: sample %s was already listed on line %d", line, s.ID, prev)
		}
		seen[s.ID] = line

		samples = append(samples, s)
	}

	return samples, nil
}

// ReadFile opens the sample list at path, which may be compressed, and parses
// it with p.
func ReadFile(path string, p *Parser) ([]Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer f.Close()

	rc, err := fastqcpipe.MaybeDecompressReadCloserFromFile(f)
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
	}
	defer rc.Close()

	samples, err := p.Read(rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return samples, nil
}

// Tab wins whenever it appears. Otherwise a comma or semicolon separated list
// is accepted; a single-column list falls back to tab.
func detectDelimiter(data []byte) rune {
	if bytes.ContainsRune(data, '\t') {
		return '\t'
	}

	return fastqcpipe.DetermineDelimiter(bytes.NewReader(data), '\t', ',', ';')
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}

	return true
}

func trimTrailingEmpty(row []string) []string {
	for len(row) > 1 && strings.TrimSpace(row[len(row)-1]) == "" {
		row = row[:len(row)-1]
	}

	return row
}
