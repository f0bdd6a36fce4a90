package records

import (
	"io"
	"strings"
	"unicode"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/AndreyAkinshin/voltcheck/internal/errors"
	"github.com/AndreyAkinshin/voltcheck/internal/logging"
	"github.com/AndreyAkinshin/voltcheck/pkg/compliance"
)

// headerAliases maps folded column headings to record keys. Every record
// key also matches itself.
var headerAliases = map[string]string{
	"circuit":            "circuit",
	"circuitno":          "circuit",
	"circuitnumber":      "circuit",
	"cct":                "circuit",
	"cctno":              "circuit",
	"ref":                "circuit",
	"description":        "description",
	"circuitdescription": "description",

	"r1r2":  "r1r2",
	"r1r2ω": "r1r2",

	"r1":       "ringContinuityLive",
	"ringr1":   "ringContinuityLive",
	"ringlive": "ringContinuityLive",
	"rn":       "ringContinuityNeutral",
	"ringrn":   "ringContinuityNeutral",
	"ringneut": "ringContinuityNeutral",

	"irln":         "insulationLiveNeutral",
	"irlnmω":       "insulationLiveNeutral",
	"insulationln": "insulationLiveNeutral",
	"irle":         "insulationLiveEarth",
	"irlemω":       "insulationLiveEarth",
	"insulationle": "insulationLiveEarth",
	"irne":         "insulationNeutralEarth",
	"irnemω":       "insulationNeutralEarth",
	"insulationne": "insulationNeutralEarth",

	"zsω":        "zs",
	"measuredzs": "zs",

	"device":     "protectiveDevice",
	"ocpd":       "protectiveDevice",
	"breaker":    "protectiveDevice",
	"rcdma":      "rcdRating",
	"idn":        "rcdRating",
	"iδn":        "rcdRating",
	"rcd1x":      "rcdOneX",
	"rcd1xms":    "rcdOneX",
	"rcdtrip":    "rcdOneX",
	"1xidn":      "rcdOneX",
	"1xiδn":      "rcdOneX",
	"1iδn":       "rcdOneX",
	"rcdms":      "rcdOneX",
	"iδnma":      "rcdRating",
	"pfcln":      "pfcLiveNeutral",
	"pfclnka":    "pfcLiveNeutral",
	"pscc":       "pfcLiveNeutral",
	"pfcle":      "pfcLiveEarth",
	"pfcleka":    "pfcLiveEarth",
	"pefc":       "pfcLiveEarth",
	"functional": "functionalTesting",
}

func init() {
	for _, key := range compliance.RecordKeys() {
		headerAliases[foldHeader(key)] = key
	}
}

// foldHeader reduces a column heading to case-folded letters and digits, so
// that "Zs (Ω)", "ZS Ω" and "zs-ω" all read as "zsω".
func foldHeader(h string) string {
	h = cases.Fold().String(norm.NFKC.String(h))
	var b strings.Builder
	for _, r := range h {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// HeaderKey returns the record key a column heading maps to.
func HeaderKey(heading string) (string, bool) {
	key, ok := headerAliases[foldHeader(heading)]
	return key, ok
}

// ParseXLSX reads a schedule-of-tests worksheet. Each row below the header
// row is one circuit; rows with no mapped values are skipped. Cells are
// read as displayed, so number formats are kept.
func ParseXLSX(source string, r io.Reader, opts Options) ([]Entry, error) {
	logger := logging.OrNop(opts.Logger)

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.WrapKind(errors.KindInput, source, err, "cannot open workbook")
	}
	defer f.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
		if sheet == "" {
			return nil, errors.Input(source, "workbook has no sheets")
		}
	} else if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, errors.Inputf(source, "sheet %q not found (available: %s)", sheet, strings.Join(f.GetSheetList(), ", "))
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.WrapKind(errors.KindInput, source, err, "cannot read sheet "+sheet)
	}
	headerRow := opts.headerRow()
	if len(rows) < headerRow {
		return nil, errors.Inputf(source, "sheet %q has no header row %d", sheet, headerRow)
	}

	// Columns stay in sheet order. When two headings map to the same key the
	// leftmost non-blank cell wins.
	type column struct {
		index int
		key   string
	}
	var columns []column
	seen := make(map[string]string)
	for col, heading := range rows[headerRow-1] {
		if strings.TrimSpace(heading) == "" {
			continue
		}
		key, ok := HeaderKey(heading)
		if !ok {
			logger.Debug("ignoring column", zap.String("sheet", sheet), zap.String("heading", heading))
			continue
		}
		if first, dup := seen[key]; dup {
			logger.Debug("duplicate column",
				zap.String("sheet", sheet),
				zap.String("heading", heading),
				zap.String("first", first),
				zap.String("key", key))
		} else {
			seen[key] = heading
		}
		columns = append(columns, column{index: col, key: key})
	}
	if len(columns) == 0 {
		return nil, errors.Inputf(source, "sheet %q row %d has no recognised column headings", sheet, headerRow)
	}

	var entries []Entry
	for i := headerRow; i < len(rows); i++ {
		fields := make(map[string]string, len(columns))
		filled := false
		for _, c := range columns {
			if c.index >= len(rows[i]) {
				continue
			}
			value := rows[i][c.index]
			if strings.TrimSpace(value) == "" {
				if _, set := fields[c.key]; !set {
					fields[c.key] = value
				}
				continue
			}
			filled = true
			if prev := fields[c.key]; strings.TrimSpace(prev) == "" {
				fields[c.key] = value
			}
		}
		if !filled {
			continue
		}
		// Designations default to the spreadsheet row number.
		e, err := newEntry(source, i+1, fields)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}
