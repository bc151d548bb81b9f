package jsonc

import (
	"reflect"
	"testing"
)

func TestDecodeStripsComments(t *testing.T) {
	input := `{
	  // server settings
	  "port": 8080, /* inline */
	  "hosts": ["a", "b",], // trailing comma allowed
	}`

	got, err := Codec{}.Decode([]byte(input))
	if err != nil {
		t.Fatalf("Decode error = %v", err)
	}
	want := map[string]any{
		"port":  float64(8080),
		"hosts": []any{"a", "b"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Decode = %v, want %v", got, want)
	}
}

func TestDecodePlainJSON(t *testing.T) {
	got, err := Codec{}.Decode([]byte(`{"a": 1}`))
	if err != nil {
		t.Fatalf("Decode error = %v", err)
	}
	if !reflect.DeepEqual(got, map[string]any{"a": float64(1)}) {
		t.Errorf("Decode = %v", got)
	}
}

func TestDecodeErrors(t *testing.T) {
	for _, input := range []string{"", "  ", "{broken"} {
		if _, err := (Codec{}).Decode([]byte(input)); err == nil {
			t.Errorf("Decode(%q) error = nil, want error", input)
		}
	}
}

func TestDecodePatchWithComments(t *testing.T) {
	input := `[
	  // bump the port
	  {"op": "replace", "path": "/port", "value": 8443},
	]`

	patch, err := Codec{}.DecodePatch([]byte(input))
	if err != nil {
		t.Fatalf("DecodePatch error = %v", err)
	}
	if len(patch) != 1 {
		t.Fatalf("len = %d, want 1", len(patch))
	}
	if patch[0]["op"] != "replace" {
		t.Errorf("op = %v, want replace", patch[0]["op"])
	}
}

func TestEncodeEmitsPlainJSON(t *testing.T) {
	doc := map[string]any{"a": float64(1)}
	b, err := Codec{}.Encode(doc)
	if err != nil {
		t.Fatalf("Encode error = %v", err)
	}
	got, err := Codec{}.Decode(b)
	if err != nil {
		t.Fatalf("Decode error = %v", err)
	}
	if !reflect.DeepEqual(got, doc) {
		t.Errorf("round trip = %v, want %v", got, doc)
	}
}
