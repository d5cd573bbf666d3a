package heatmap

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"MarketHeatmap/internal/model"
)

func testRefs() []model.StockRef {
	return []model.StockRef{
		{Code: "8316.T", Name: "三井住友フィナンシャルグループ", Sector: "銀行"},
		{Code: "8306.T", Name: "三菱UFJフィナンシャル・グループ", Sector: "銀行"},
		{Code: "2914.T", Name: "日本たばこ産業", Sector: "食品"},
		{Code: "7203.T", Name: "トヨタ自動車", Sector: "自動車"},
	}
}

func testObs() map[string]model.Observation {
	return map[string]model.Observation{
		"8316.T": {Code: "8316.T", Price: 9800, ChangePct: -1.25, Valid: true},
		"8306.T": {Code: "8306.T", Price: 1500, ChangePct: 0.5, Valid: true},
		"2914.T": {Code: "2914.T", Valid: false},
		"7203.T": {Code: "7203.T", Price: 3105, ChangePct: 5.0, Valid: true},
	}
}

func render(t *testing.T) string {
	t.Helper()
	r := &Renderer{Title: "日経225 ヒートマップ", CodeSuffix: ".T"}
	page, err := r.Render(testRefs(), testObs(), time.Date(2026, 8, 28, 15, 10, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(page)
}

func TestRender_SectorOrdering(t *testing.T) {
	html := render(t)

	// Sectors ascend by the smallest numeric code among members:
	// 食品 (2914) < 自動車 (7203) < 銀行 (8306).
	food := strings.Index(html, `data-sector="食品"`)
	auto := strings.Index(html, `data-sector="自動車"`)
	bank := strings.Index(html, `data-sector="銀行"`)
	if food < 0 || auto < 0 || bank < 0 {
		t.Fatal("missing sector groups in output")
	}
	if !(food < auto && auto < bank) {
		t.Errorf("sector order wrong: 食品=%d 自動車=%d 銀行=%d", food, auto, bank)
	}

	// Within a sector, tiles ascend by code.
	if strings.Index(html, `data-code="8306"`) > strings.Index(html, `data-code="8316"`) {
		t.Error("tiles within 銀行 must ascend by code")
	}
}

func TestRender_TileContent(t *testing.T) {
	html := render(t)

	tile := func(code string) string {
		re := regexp.MustCompile(`(?s)<div class="tile" data-sector="[^"]*" data-code="` + code + `".*?tile-price">[^<]*</div>`)
		m := re.FindString(html)
		if m == "" {
			t.Fatalf("tile %s not found", code)
		}
		return m
	}

	toyota := tile("7203")
	if !strings.Contains(toyota, "background-color:#00873E;color:#FFFFFF") {
		t.Error("+5.00% tile must use the dark green bucket")
	}
	if !strings.Contains(toyota, "+5.00%") {
		t.Error("change text must be signed with two decimals")
	}
	if !strings.Contains(toyota, "¥3,105") {
		t.Error("price must be yen formatted with thousands separators")
	}

	jt := tile("2914")
	if !strings.Contains(jt, "background-color:#9E9E9E;color:#FFFFFF") {
		t.Error("absent tile must use the gray bucket")
	}
	if !strings.Contains(jt, "N/A") {
		t.Error("absent tile must show N/A")
	}
	if !strings.Contains(jt, `data-change="0"`) {
		t.Error("absent tile sorts as zero in the change views")
	}
}

func TestRender_CodeSuffixStripped(t *testing.T) {
	html := render(t)
	if strings.Contains(html, `data-code="7203.T"`) {
		t.Error("display codes must have the provider suffix stripped")
	}
}

// TestRender_EmbeddedParity simulates the in-page classifier: it decodes the
// serialized threshold table and dataset the way the script sees them, walks
// the decoded table, and requires byte-identical bucket assignment to the
// server-rendered tiles.
func TestRender_EmbeddedParity(t *testing.T) {
	html := render(t)

	extract := func(name string) string {
		re := regexp.MustCompile(`const ` + name + ` = (.*);`)
		m := re.FindStringSubmatch(html)
		if m == nil {
			t.Fatalf("embedded %s not found", name)
		}
		return m[1]
	}

	var decoded []Bucket
	if err := json.Unmarshal([]byte(extract("buckets")), &decoded); err != nil {
		t.Fatalf("decode embedded buckets: %v", err)
	}
	var absent Bucket
	if err := json.Unmarshal([]byte(extract("absentBucket")), &absent); err != nil {
		t.Fatalf("decode embedded absent bucket: %v", err)
	}
	var records []stockRecord
	if err := json.Unmarshal([]byte(extract("stockData")), &records); err != nil {
		t.Fatalf("decode embedded dataset: %v", err)
	}
	if len(records) != len(testRefs()) {
		t.Fatalf("expected %d embedded records, got %d", len(testRefs()), len(records))
	}

	// The script's walk over the decoded table.
	clientClassify := func(pct *float64) Bucket {
		if pct == nil {
			return absent
		}
		for _, b := range decoded {
			if b.Min == nil || *pct >= *b.Min {
				return b
			}
		}
		return decoded[len(decoded)-1]
	}

	obs := testObs()
	for _, rec := range records {
		got := clientClassify(rec.ChangePct)
		want := ClassifyObservation(obs[rec.Code+".T"])
		if got.Background != want.Background || got.Text != want.Text {
			t.Errorf("%s: client bucket %s/%s, server bucket %s/%s",
				rec.Code, got.Background, got.Text, want.Background, want.Text)
		}
	}
}

func TestWriteFile_Atomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "index.html")

	if err := WriteFile(path, []byte("first")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := WriteFile(path, []byte("second")); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "second" {
		t.Errorf("expected overwritten content, got %q", data)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("temp files must not be left behind, found %d entries", len(entries))
	}
}
