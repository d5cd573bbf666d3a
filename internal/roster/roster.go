package roster

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"MarketHeatmap/internal/model"
)

// Load reads the roster CSV (header: code,name,sector) and returns the
// stock list in file order. A missing file, missing header column, or
// malformed row is a configuration error and aborts the load.
func Load(path string) ([]model.StockRef, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open roster: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read roster header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	codeIdx, nameIdx, sectorIdx := -1, -1, -1
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "code":
			codeIdx = i
		case "name":
			nameIdx = i
		case "sector":
			sectorIdx = i
		}
	}
	if codeIdx < 0 || nameIdx < 0 || sectorIdx < 0 {
		return nil, fmt.Errorf("roster %s: header must contain code, name, sector (got %v)", path, header)
	}

	var refs []model.StockRef
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read roster row: %w", err)
		}
		refs = append(refs, model.StockRef{
			Code:   strings.TrimSpace(row[codeIdx]),
			Name:   strings.TrimSpace(row[nameIdx]),
			Sector: strings.TrimSpace(row[sectorIdx]),
		})
	}
	if len(refs) == 0 {
		return nil, fmt.Errorf("roster %s has no data rows", path)
	}
	return refs, nil
}
