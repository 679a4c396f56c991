package mom

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"
)

func filepathGlob(dir, pattern string) ([]string, error) {
	return filepath.Glob(filepath.Join(dir, pattern))
}

func TestParseVisitDate(t *testing.T) {
	march15 := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-03-15", march15},
		{"15/03/2024", march15},
		{" 2024-03-15 ", march15},
		{"March 15, 2024", march15},
		{"15 March 2024", march15},
		{"2024-03-15T18:30:00Z", march15},
		{"2024-3-15", march15},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseVisitDate(tt.in)
			if err != nil {
				t.Fatalf("ParseVisitDate(%q): %v", tt.in, err)
			}
			if !got.Equal(tt.want) {
				t.Fatalf("ParseVisitDate(%q) = %s", tt.in, got)
			}
		})
	}
}

func TestParseVisitDate_Rejects(t *testing.T) {
	for _, in := range []string{"not-a-date", "32/01/2024", "2024-02-30"} {
		_, err := ParseVisitDate(in)
		ve, ok := err.(*ValidationError)
		if !ok {
			t.Fatalf("ParseVisitDate(%q) err = %v", in, err)
		}
		if ve.Value != in || ve.Fields[0] != "visitDate" {
			t.Fatalf("ParseVisitDate(%q) error = %+v", in, ve)
		}
	}
}

func TestNormalizeAttendees(t *testing.T) {
	raw := []json.RawMessage{
		json.RawMessage(`"  Alice "`),
		json.RawMessage(`{"name":"Bob","role":"lead"}`),
		json.RawMessage(`""`),
		json.RawMessage(`{"name":""}`),
		json.RawMessage(`42`),
		json.RawMessage(`null`),
	}
	got, dropped := NormalizeAttendees(raw)
	if len(got) != 2 || got[0].Name != "Alice" || got[1].Name != "Bob" {
		t.Fatalf("attendees = %+v", got)
	}
	if dropped != 4 {
		t.Fatalf("dropped = %d", dropped)
	}
}

func TestNormalizeImages(t *testing.T) {
	raw := []json.RawMessage{
		json.RawMessage(`"AAAA"`),
		json.RawMessage(`{"data":"BBBB","width":640}`),
		json.RawMessage(`{"data":"  "}`),
		json.RawMessage(`[1,2]`),
	}
	got, dropped := NormalizeImages(raw)
	if len(got) != 2 || dropped != 2 {
		t.Fatalf("images = %+v dropped = %d", got, dropped)
	}
	if got[0].Data != "AAAA" || got[0].Width != 400 || got[0].Height != 300 {
		t.Fatalf("first = %+v", got[0])
	}
	if got[1].Width != 640 || got[1].Height != 300 {
		t.Fatalf("second = %+v", got[1])
	}
}

func TestNormalizeImages_Dimensions(t *testing.T) {
	raw := []json.RawMessage{
		json.RawMessage(`{"data":"AAAA","width":1e15,"height":"250"}`),
		json.RawMessage(`{"data":"BBBB","width":"wide","height":-3}`),
		json.RawMessage(`{"data":"CCCC","width":" 640 ","height":480.7}`),
	}
	got, dropped := NormalizeImages(raw)
	if len(got) != 3 || dropped != 0 {
		t.Fatalf("images = %+v dropped = %d", got, dropped)
	}
	want := [][2]int{{4000, 250}, {400, 300}, {640, 480}}
	for i, w := range want {
		if got[i].Width != w[0] || got[i].Height != w[1] {
			t.Errorf("image %d size = %dx%d, want %dx%d", i, got[i].Width, got[i].Height, w[0], w[1])
		}
	}
}

func TestBaseFileName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Acme Corp", "MOM_Acme_Corp"},
		{"  Acme   Corp  Ltd ", "MOM_Acme_Corp_Ltd"},
		{"R&D / Labs: East", "MOM_RD__Labs_East"},
		{"../etc", "MOM_etc"},
		{"", "MOM_document"},
		{"Déjà Vu", "MOM_Déjà_Vu"},
	}
	for _, tt := range tests {
		if got := BaseFileName(tt.in); got != tt.want {
			t.Errorf("BaseFileName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDownloadFileName(t *testing.T) {
	got := DownloadFileName("Acme Corp", time.UnixMilli(1700000000123))
	if got != "MOM_Acme_Corp_1700000000123.docx" {
		t.Fatalf("got %q", got)
	}
}
