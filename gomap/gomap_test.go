package gomap

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/signadot/plistkit/format"
	"github.com/signadot/plistkit/ir"
)

type Common struct {
	PayloadUUID string `json:"PayloadUUID"`
}

type WiFi struct {
	Common
	SSID      string    `json:"SSID_STR"`
	Hidden    bool      `json:"HIDDEN_NETWORK,omitempty"`
	Priority  int       `json:"Priority"`
	Installed time.Time `json:"Installed"`
	Cert      []byte    `json:"Cert"`
	Skipped   string    `json:"-"`
	Tags      []string
}

const wifiXML = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>PayloadUUID</key>
	<string>1234</string>
	<key>SSID_STR</key>
	<string>office</string>
	<key>Priority</key>
	<integer>3</integer>
	<key>Installed</key>
	<date>2024-05-06T07:08:09Z</date>
	<key>Cert</key>
	<data>AQID</data>
	<key>Tags</key>
	<array>
		<string>a</string>
	</array>
</dict>
</plist>
`

func TestLoad(t *testing.T) {
	var w WiFi
	if err := Load([]byte(wifiXML), &w); err != nil {
		t.Fatal(err)
	}
	want := WiFi{
		Common:    Common{PayloadUUID: "1234"},
		SSID:      "office",
		Priority:  3,
		Installed: time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC),
		Cert:      []byte{1, 2, 3},
		Tags:      []string{"a"},
	}
	if diff := cmp.Diff(want, w); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestLoadJSON(t *testing.T) {
	var m map[string]any
	if err := Load([]byte(`{"a": 1, "b": [true]}`), &m, LoadFormat(format.JSONFormat)); err != nil {
		t.Fatal(err)
	}
	want := map[string]any{"a": 1.0, "b": []any{true}}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestToIR(t *testing.T) {
	w := &WiFi{
		Common:    Common{PayloadUUID: "1234"},
		SSID:      "office",
		Priority:  3,
		Installed: time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC),
		Cert:      []byte{1, 2, 3},
		Skipped:   "x",
	}
	it, err := ToIR(w)
	if err != nil {
		t.Fatal(err)
	}
	wantKeys := []string{"PayloadUUID", "SSID_STR", "Priority", "Installed", "Cert"}
	if diff := cmp.Diff(wantKeys, it.Dict.Keys()); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}
	if got := it.Dict.Get("Installed"); got.Type != ir.DateType || !got.Date.Equal(w.Installed) {
		t.Errorf("Installed: got %s", got.Type)
	}
	if got := it.Dict.Get("Cert"); got.Type != ir.DataType {
		t.Errorf("Cert: got %s", got.Type)
	}
	if got := it.Dict.Get("Priority"); !got.Equal(ir.FromInt(3)) {
		t.Errorf("Priority: got %v", got)
	}

	var back WiFi
	if err := FromIR(it, &back); err != nil {
		t.Fatal(err)
	}
	w.Skipped = ""
	if diff := cmp.Diff(*w, back); diff != "" {
		t.Errorf("round trip (-want +got):\n%s", diff)
	}
}

type custom struct{ n int }

func (c *custom) FromIR(it *ir.Item) error {
	c.n = it.ChildCount()
	return nil
}

func TestIRFromer(t *testing.T) {
	c := &custom{}
	if err := FromIR(ir.FromSlice([]*ir.Item{ir.FromInt(1), ir.FromInt(2)}), c); err != nil {
		t.Fatal(err)
	}
	if c.n != 2 {
		t.Errorf("got %d", c.n)
	}
}
