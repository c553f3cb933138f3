package menu

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"go.uber.org/multierr"

	"github.com/cafev2/storefront-backend/pkg/db/models"
	"github.com/cafev2/storefront-backend/pkg/types"
)

var csvHeader = []string{"Name", "Price", "Category", "Description", "Image", "isVeg"}

// ParseCSV reads a spreadsheet export into item inputs. Column matching
// is case-insensitive and rows with defects are reported via the
// accumulated error while parsing continues, so one bad row does not
// sink the import.
func ParseCSV(r io.Reader) ([]ItemInput, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	columns := map[string]int{}
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := columns["name"]; !ok {
		return nil, fmt.Errorf("missing required column %q", "Name")
	}

	var (
		inputs []ItemInput
		errs   error
	)
	for rowNum := 2; ; rowNum++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("row %d: %w", rowNum, err))
			continue
		}

		field := func(name string) string {
			idx, ok := columns[name]
			if !ok || idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}

		name := field("name")
		if name == "" {
			errs = multierr.Append(errs, fmt.Errorf("row %d: name is empty", rowNum))
			continue
		}

		inputs = append(inputs, ItemInput{
			Name:        name,
			Price:       types.AmountFromString(field("price")),
			Category:    field("category"),
			Description: field("description"),
			Image:       field("image"),
			IsVeg:       parseVegFlag(field("isveg")),
		})
	}
	return inputs, errs
}

// WriteCSV renders the catalog in the same column layout ParseCSV
// accepts, keeping export-then-import lossless for the basic fields.
func WriteCSV(w io.Writer, items []models.MenuItem) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, item := range items {
		veg := "FALSE"
		if item.IsVeg {
			veg = "TRUE"
		}
		record := []string{
			item.Name,
			item.Price.String(),
			item.Category,
			item.Description,
			FirstImageURL(item),
			veg,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func parseVegFlag(raw string) bool {
	switch strings.ToLower(raw) {
	case "true", "yes", "1":
		return true
	default:
		return false
	}
}
