package importer

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/frahmantamala/company-portal/internal"
)

// Row is one parsed dependent record from the uploaded spreadsheet:
// (essn, dependent_name, sex, bdate, relationship).
type Row struct {
	ESSN         string
	Name         string
	Sex          string
	BirthDate    string
	Relationship string
}

// SpreadsheetExt is the only accepted upload extension.
const SpreadsheetExt = ".xlsx"

// AcceptsFilename reports whether an uploaded filename carries the expected
// spreadsheet extension.
func AcceptsFilename(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), SpreadsheetExt)
}

// ParseDependents reads the first worksheet, skips the header row and
// interprets each remaining row as a dependent 5-tuple. The first row missing
// an essn or dependent name aborts the whole parse, reporting that row's
// 1-based spreadsheet index.
func ParseDependents(r io.Reader) ([]Row, error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return nil, internal.NewValidationError(
			fmt.Sprintf("could not read spreadsheet: %v", err), internal.ErrCodeInvalidFile)
	}
	defer func() { _ = file.Close() }()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return nil, internal.NewValidationError("no worksheet found", internal.ErrCodeInvalidFile)
	}

	rows, err := file.GetRows(sheetName)
	if err != nil {
		return nil, internal.NewValidationError(
			fmt.Sprintf("could not read worksheet: %v", err), internal.ErrCodeInvalidFile)
	}

	var result []Row
	for i, cells := range rows {
		if i == 0 {
			continue // header
		}

		row := Row{
			ESSN:         cellValue(cells, 0),
			Name:         cellValue(cells, 1),
			Sex:          cellValue(cells, 2),
			BirthDate:    cellValue(cells, 3),
			Relationship: cellValue(cells, 4),
		}

		if row.ESSN == "" || row.Name == "" {
			return nil, internal.NewValidationError(
				fmt.Sprintf("invalid row %d: essn and dependent name required", i+1),
				internal.ErrCodeInvalidRow)
		}

		result = append(result, row)
	}

	return result, nil
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
