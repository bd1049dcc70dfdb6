package terminology

import (
	"bufio"
	"compress/gzip"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Layout describes where a code-group source keeps its columns.
type Layout struct {
	Name       string
	GroupCol   int
	MemberCol  int
	DisplayCol int
	// MinFields is the shortest row that is not treated as malformed.
	MinFields int
	// Header is the group column value of a leading header row.
	Header string
}

var (
	// PanelLayout matches LOINC PanelsAndForms: ParentLoinc, ParentName, ..., Loinc.
	PanelLayout = Layout{Name: "panel", GroupCol: 1, MemberCol: 5, DisplayCol: 2, MinFields: 6, Header: "ParentLoinc"}
	// LocalLayout matches the clinic lab-group export.
	LocalLayout = Layout{Name: "local", GroupCol: 3, MemberCol: 1, DisplayCol: 4, MinFields: 8, Header: "GROUP_IDENTIFIER"}
)

// LoadStats counts what a parse kept and skipped.
type LoadStats struct {
	Rows    int
	Skipped int
	Groups  int
}

// ParseGroups reads comma-separated rows into a GroupTable. Malformed rows
// are skipped; only read failures are returned.
func ParseGroups(r io.Reader, layout Layout) (*GroupTable, LoadStats, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	table := NewGroupTable()
	var stats LoadStats
	first := true

	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				stats.Skipped++
				first = false
				continue
			}
			return nil, stats, fmt.Errorf("read %s source: %w", layout.Name, err)
		}

		stats.Rows++
		if len(rec) < layout.MinFields {
			stats.Skipped++
			first = false
			continue
		}

		group := clean(rec[layout.GroupCol])
		if first {
			first = false
			if strings.EqualFold(group, layout.Header) {
				stats.Skipped++
				continue
			}
		}

		member := clean(rec[layout.MemberCol])
		if group == "" || member == "" {
			stats.Skipped++
			continue
		}
		table.add(group, member, clean(rec[layout.DisplayCol]))
	}

	table.seal()
	stats.Groups = table.Len()
	return table, stats, nil
}

func clean(field string) string {
	return strings.TrimSpace(strings.ReplaceAll(field, `"`, ""))
}

// LoadFile parses one source file, transparently gunzipping it when the
// name ends in .gz or the content starts with the gzip magic bytes.
func LoadFile(path string, layout Layout) (*GroupTable, LoadStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("open %s source: %w", layout.Name, err)
	}
	defer f.Close()

	r, err := maybeGunzip(bufio.NewReader(f), strings.HasSuffix(path, ".gz"))
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("open %s source %s: %w", layout.Name, path, err)
	}
	defer r.Close()
	return ParseGroups(r, layout)
}

// maybeGunzip wraps br in a gzip reader when needed. Closing the result
// never closes the underlying file.
func maybeGunzip(br *bufio.Reader, force bool) (io.ReadCloser, error) {
	magic, err := br.Peek(2)
	isGzip := err == nil && magic[0] == 0x1f && magic[1] == 0x8b
	if !isGzip && !force {
		return io.NopCloser(br), nil
	}
	gz, err := gzip.NewReader(br)
	if err != nil {
		return nil, fmt.Errorf("gzip: %w", err)
	}
	return gz, nil
}

// LoadDirectory builds the Directory from both sources. Any error means the
// process must not serve requests.
func LoadDirectory(panelPath, localPath, localSystem string, logger zerolog.Logger) (*Directory, error) {
	panel, ps, err := LoadFile(panelPath, PanelLayout)
	if err != nil {
		return nil, err
	}
	local, ls, err := LoadFile(localPath, LocalLayout)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int("panel_groups", ps.Groups).
		Int("panel_rows_skipped", ps.Skipped).
		Int("local_groups", ls.Groups).
		Int("local_rows_skipped", ls.Skipped).
		Msg("code directory loaded")

	return NewDirectory(panel, local, localSystem), nil
}
