package ws

import (
	"encoding/json"
	"testing"
)

func TestDecodePackage(t *testing.T) {
	raw := json.RawMessage(`[{"title":"History","questions":[{"text":"q","points":100,"type":"text","content":"q","answer":{"type":"text","content":"a","text":"a"}}]}]`)
	cats := decodePackage(raw)
	if len(cats) != 1 || cats[0].Title != "History" {
		t.Fatalf("decoded %+v", cats)
	}
	if cats[0].Questions[0].Points != 100 {
		t.Errorf("points %d, want 100", cats[0].Questions[0].Points)
	}
}

func TestDecodePackageCoercesToEmpty(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"object", `{"categories":[]}`},
		{"string", `"not a package"`},
		{"null", `null`},
		{"garbage", `{{{`},
		{"empty", ``},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cats := decodePackage(json.RawMessage(tc.raw))
			if cats == nil {
				t.Fatal("coerced package must not be nil")
			}
			if len(cats) != 0 {
				t.Errorf("decoded %+v, want empty", cats)
			}
		})
	}
}
