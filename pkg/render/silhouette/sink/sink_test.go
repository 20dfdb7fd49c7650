package sink

import (
	"bytes"
	"encoding/json"
	"image/png"
	"strings"
	"testing"

	"github.com/matzehuels/skyline/pkg/building"
	"github.com/matzehuels/skyline/pkg/render/silhouette"
	"github.com/matzehuels/skyline/pkg/street"
)

func testStreet(t *testing.T) *street.Street {
	t.Helper()
	s, err := street.New(30)
	if err != nil {
		t.Fatal(err)
	}
	house, err := building.NewHouse(2, 4, 10, 3, "red", "ann")
	if err != nil {
		t.Fatal(err)
	}
	park, err := building.NewPlayground(10, 8)
	if err != nil {
		t.Fatal(err)
	}
	office, err := building.NewOffice(4, 6, 20, "bank", "bob")
	if err != nil {
		t.Fatal(err)
	}
	market, err := building.NewMarket(20, 6, 8, "08:00", "18:00", "cy")
	if err != nil {
		t.Fatal(err)
	}
	for _, add := range []struct {
		row street.RowID
		b   building.Building
	}{
		{street.Row1, house},
		{street.Row1, park},
		{street.Row2, office},
		{street.Row2, market},
	} {
		if err := s.AddBuilding(add.row, add.b); err != nil {
			t.Fatal(err)
		}
	}
	return s
}

func TestRenderText(t *testing.T) {
	s := testStreet(t)

	full := string(RenderText(s))
	if full != silhouette.RenderStreet(s) {
		t.Error("RenderText() without options should match silhouette.RenderStreet()")
	}

	bare := string(RenderText(s, WithoutHeader(), WithoutRuler()))
	lines := strings.Split(strings.TrimSuffix(bare, "\n"), "\n")
	if len(lines) != s.MaxHeight()+1 {
		t.Errorf("lines = %d, want %d", len(lines), s.MaxHeight()+1)
	}
	if strings.Contains(bare, "meter") || strings.Contains(bare, "Skyline") {
		t.Error("header and ruler should be omitted")
	}
}

func TestSpans(t *testing.T) {
	s := testStreet(t)
	got := spans(s)

	// Office (height 10) covers 4..9 and hides the house at 4..5; the house
	// keeps 2..3; the market (height 4) covers 20..25.
	want := []struct {
		left, right, height int
		cat                 building.Category
	}{
		{2, 3, 5, building.House},
		{4, 9, 10, building.Office},
		{20, 25, 4, building.Market},
	}
	if len(got) != len(want) {
		t.Fatalf("spans() = %+v, want %d spans", got, len(want))
	}
	for i, w := range want {
		g := got[i]
		if g.Left != w.left || g.Right != w.right || g.Height != w.height || g.Category != w.cat {
			t.Errorf("span %d = %+v, want %+v", i, g, w)
		}
	}
}

func TestRenderSVG(t *testing.T) {
	s := testStreet(t)
	svg := string(RenderSVG(s, WithTitle("Main <St>"), WithCellSize(8)))

	if !strings.HasPrefix(svg, "<svg ") || !strings.HasSuffix(svg, "</svg>\n") {
		t.Fatal("RenderSVG() output is not an svg document")
	}
	for _, want := range []string{
		`class="building house"`,
		`class="building office"`,
		`class="building market"`,
		`class="playground"`,
		`class="ground"`,
		"Main &lt;St&gt;",
		">30</text>",
		hex(DefaultPalette().Fill(building.Office)),
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("RenderSVG() missing %q", want)
		}
	}
	if n := strings.Count(svg, "<line "); n != 7 {
		t.Errorf("ruler ticks = %d, want 7", n)
	}
}

func TestRenderPNG(t *testing.T) {
	s := testStreet(t)
	data, err := RenderPNG(s, WithScale(1), WithPNGCellSize(4))
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode() error: %v", err)
	}

	f := newFrame(s.Length(), s.MaxHeight(), 4)
	b := img.Bounds()
	if b.Dx() != int(f.width()+0.5) || b.Dy() != int(f.height()+0.5) {
		t.Errorf("image size = %dx%d, want %.0fx%.0f", b.Dx(), b.Dy(), f.width(), f.height())
	}

	// Center of the office span is filled with the office colour.
	x, y, w, h := f.rect(span{Left: 4, Right: 9, Height: 10})
	got := img.At(int(x+w/2), int(y+h/2))
	if hex(got) != hex(DefaultPalette().Fill(building.Office)) {
		t.Errorf("office pixel = %s, want %s", hex(got), hex(DefaultPalette().Fill(building.Office)))
	}
}

func TestRenderJSON(t *testing.T) {
	s := testStreet(t)
	data, err := RenderJSON(s, WithJSONGrid(), WithJSONName("main"))
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if out.Name != "main" || out.Length != 30 || out.MaxHeight != 10 {
		t.Errorf("header = %q/%d/%d, want main/30/10", out.Name, out.Length, out.MaxHeight)
	}
	if len(out.Profile) != 30 || out.Profile[4] != 10 || out.Profile[2] != 5 {
		t.Errorf("Profile = %v", out.Profile)
	}
	if len(out.Rows) != 2 || len(out.Rows[0].Buildings) != 2 || len(out.Rows[1].Buildings) != 2 {
		t.Errorf("Rows = %+v", out.Rows)
	}
	if len(out.Grid) != 11 {
		t.Errorf("Grid rows = %d, want 11", len(out.Grid))
	}
}

func TestRenderJSONEmptyStreet(t *testing.T) {
	s, _ := street.New(20)
	data, err := RenderJSON(s)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"spans": []`) {
		t.Errorf("empty street should encode empty spans, got %s", data)
	}
	if strings.Contains(string(data), `"grid"`) {
		t.Error("grid should be omitted without WithJSONGrid")
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		input   string
		want    []Format
		wantErr bool
	}{
		{"text", []Format{FormatText}, false},
		{"txt,svg", []Format{FormatText, FormatSVG}, false},
		{" PNG , json,png ", []Format{FormatPNG, FormatJSON}, false},
		{"dot", []Format{FormatDOT}, false},
		{"pdf", nil, true},
		{"", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormats(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormats(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ParseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ParseFormats(%q)[%d] = %v, want %v", tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestFormatMetadata(t *testing.T) {
	if FormatText.Ext() != "txt" || FormatSVG.Ext() != "svg" {
		t.Error("unexpected extensions")
	}
	if FormatPNG.ContentType() != "image/png" || !FormatPNG.Binary() || FormatSVG.Binary() {
		t.Error("unexpected png metadata")
	}
}
