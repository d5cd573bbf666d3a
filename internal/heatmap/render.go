package heatmap

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"MarketHeatmap/internal/model"
)

// Renderer produces the self-contained heatmap page.
type Renderer struct {
	Title      string
	CodeSuffix string // stripped from codes for display, e.g. ".T"
}

// tileView is one server-rendered tile.
type tileView struct {
	Name       string
	Code       string // display code, suffix stripped
	Sector     string
	Background string
	Text       string
	Change     string
	Price      string
	DataChange string
}

// sectorView is one sector block in the initial grouped view.
type sectorView struct {
	Name  string
	Tiles []tileView
}

// stockRecord is the embedded dataset shape reused by the in-page script.
// Nil change/price serialize as JSON null, which the script treats as
// absent data.
type stockRecord struct {
	Code      string   `json:"code"`
	Name      string   `json:"name"`
	Sector    string   `json:"sector"`
	ChangePct *float64 `json:"change_pct"`
	Price     *float64 `json:"price"`
}

type pageView struct {
	Title      string
	UpdatedAt  string
	Legend     []Bucket
	Groups     []sectorView
	StockJSON  template.JS
	BucketJSON template.JS
	AbsentJSON template.JS
}

// Render builds the complete document: the server-rendered sector view plus
// the embedded dataset and threshold table for client-side re-sorting.
func (r *Renderer) Render(refs []model.StockRef, obs map[string]model.Observation, updatedAt time.Time) ([]byte, error) {
	stockJSON, err := json.Marshal(r.records(refs, obs))
	if err != nil {
		return nil, fmt.Errorf("marshal dataset: %w", err)
	}
	bucketJSON, err := json.Marshal(buckets)
	if err != nil {
		return nil, fmt.Errorf("marshal buckets: %w", err)
	}
	absentJSON, err := json.Marshal(AbsentBucket)
	if err != nil {
		return nil, fmt.Errorf("marshal absent bucket: %w", err)
	}

	// Legend runs lowest range to highest.
	legend := make([]Bucket, 0, len(buckets))
	for i := len(buckets) - 1; i >= 0; i-- {
		legend = append(legend, buckets[i])
	}

	view := pageView{
		Title:      r.Title,
		UpdatedAt:  updatedAt.Format("2006年01月02日 15:04 JST"),
		Legend:     legend,
		Groups:     r.groupBySector(refs, obs),
		StockJSON:  template.JS(stockJSON),
		BucketJSON: template.JS(bucketJSON),
		AbsentJSON: template.JS(absentJSON),
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) displayCode(code string) string {
	return strings.TrimSuffix(code, r.CodeSuffix)
}

// numericCode parses the leading digits of a display code, mirroring
// parseInt in the embedded script. Codes without a leading digit sort last.
func numericCode(code string) int {
	end := 0
	for end < len(code) && code[end] >= '0' && code[end] <= '9' {
		end++
	}
	if end == 0 {
		return math.MaxInt32
	}
	n, err := strconv.Atoi(code[:end])
	if err != nil {
		return math.MaxInt32
	}
	return n
}

func (r *Renderer) makeTile(ref model.StockRef, o model.Observation) tileView {
	b := ClassifyObservation(o)
	t := tileView{
		Name:       ref.Name,
		Code:       r.displayCode(ref.Code),
		Sector:     ref.Sector,
		Background: b.Background,
		Text:       b.Text,
		Change:     "N/A",
		DataChange: "0",
	}
	if o.Valid {
		t.Change = fmt.Sprintf("%+.2f%%", o.ChangePct)
		t.Price = "¥" + humanize.Comma(int64(math.Round(o.Price)))
		t.DataChange = strconv.FormatFloat(o.ChangePct, 'g', -1, 64)
	}
	return t
}

// groupBySector builds the initial view: sectors ordered by the smallest
// numeric code among their members, tiles within a sector by code ascending.
func (r *Renderer) groupBySector(refs []model.StockRef, obs map[string]model.Observation) []sectorView {
	groups := make(map[string][]tileView)
	var order []string
	for _, ref := range refs {
		if _, seen := groups[ref.Sector]; !seen {
			order = append(order, ref.Sector)
		}
		groups[ref.Sector] = append(groups[ref.Sector], r.makeTile(ref, obs[ref.Code]))
	}

	minCode := make(map[string]int, len(order))
	for sector, tiles := range groups {
		low := math.MaxInt32
		for _, t := range tiles {
			if n := numericCode(t.Code); n < low {
				low = n
			}
		}
		minCode[sector] = low
	}
	sort.SliceStable(order, func(i, j int) bool { return minCode[order[i]] < minCode[order[j]] })

	views := make([]sectorView, 0, len(order))
	for _, sector := range order {
		tiles := groups[sector]
		sort.Slice(tiles, func(i, j int) bool { return tiles[i].Code < tiles[j].Code })
		views = append(views, sectorView{Name: sector, Tiles: tiles})
	}
	return views
}

// records builds the embedded dataset in roster order.
func (r *Renderer) records(refs []model.StockRef, obs map[string]model.Observation) []stockRecord {
	out := make([]stockRecord, 0, len(refs))
	for _, ref := range refs {
		rec := stockRecord{
			Code:   r.displayCode(ref.Code),
			Name:   ref.Name,
			Sector: ref.Sector,
		}
		if o := obs[ref.Code]; o.Valid {
			price, pct := o.Price, o.ChangePct
			rec.Price = &price
			rec.ChangePct = &pct
		}
		out = append(out, rec)
	}
	return out
}

// WriteFile writes the document atomically: a failed run leaves the prior
// artifact untouched.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".heatmap-*.html")
	if err != nil {
		return fmt.Errorf("create temp output: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close output: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace output: %w", err)
	}
	return nil
}
