package tsugihagi

import (
	"reflect"
	"testing"
)

func TestGetPath(t *testing.T) {
	doc := map[string]any{
		"a": 1,
		"b": map[string]any{
			"c":   true,
			"a/b": "escaped",
		},
		"items": []any{"x", "y", "z"},
		"empty": []any{},
	}

	tests := []struct {
		name    string
		path    string
		want    any
		wantErr string
	}{
		{
			name: "whole document",
			path: "",
			want: doc,
		},
		{
			name: "top level key",
			path: "/a",
			want: 1,
		},
		{
			name: "nested key",
			path: "/b/c",
			want: true,
		},
		{
			name: "escaped key",
			path: "/b/a~1b",
			want: "escaped",
		},
		{
			name: "array index",
			path: "/items/1",
			want: "y",
		},
		{
			name: "dash reads last element",
			path: "/items/-",
			want: "z",
		},
		{
			name:    "dash on empty array",
			path:    "/empty/-",
			wantErr: "can't use index '-' with empty array",
		},
		{
			name:    "out of bounds",
			path:    "/items/3",
			wantErr: "out-of-bounds index 3",
		},
		{
			name:    "string key into array",
			path:    "/items/first",
			wantErr: "can't index into array with string first",
		},
		{
			name:    "missing key",
			path:    "/nope",
			wantErr: "missing key nope",
		},
		{
			name:    "index into scalar",
			path:    "/a/b",
			wantErr: "can't index into value 1",
		},
		{
			name:    "malformed pointer",
			path:    "a/b",
			wantErr: "JSON Pointer should start with a slash",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GetPath(doc, tt.path)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("GetPath(%q) error = nil, want %q", tt.path, tt.wantErr)
				}
				if !IsPathError(err) {
					t.Errorf("GetPath(%q) error kind = %v, want PathError", tt.path, err)
				}
				if err.Error() != tt.wantErr {
					t.Errorf("GetPath(%q) error = %q, want %q", tt.path, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("GetPath(%q) error = %v", tt.path, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("GetPath(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestAddPath(t *testing.T) {
	tests := []struct {
		name    string
		doc     any
		path    string
		value   any
		want    any
		wantErr string
	}{
		{
			name:  "empty pointer replaces document",
			doc:   map[string]any{"a": 1},
			path:  "",
			value: "new",
			want:  "new",
		},
		{
			name:  "new object key",
			doc:   map[string]any{"a": 1},
			path:  "/b",
			value: 2,
			want:  map[string]any{"a": 1, "b": 2},
		},
		{
			name:  "overwrite object key",
			doc:   map[string]any{"a": 1},
			path:  "/a",
			value: 2,
			want:  map[string]any{"a": 2},
		},
		{
			name:  "array insert shifts right",
			doc:   map[string]any{"a": []any{1, 3}},
			path:  "/a/1",
			value: 2,
			want:  map[string]any{"a": []any{1, 2, 3}},
		},
		{
			name:  "index equal to length appends",
			doc:   map[string]any{"a": []any{1, 2}},
			path:  "/a/2",
			value: 3,
			want:  map[string]any{"a": []any{1, 2, 3}},
		},
		{
			name:    "index past length",
			doc:     map[string]any{"a": []any{1, 2}},
			path:    "/a/3",
			value:   3,
			wantErr: "out-of-bounds index 3",
		},
		{
			name:  "dash appends",
			doc:   map[string]any{"a": []any{1, 2}},
			path:  "/a/-",
			value: 3,
			want:  map[string]any{"a": []any{1, 2, 3}},
		},
		{
			name:  "dash appends to empty array",
			doc:   map[string]any{"a": []any{}},
			path:  "/a/-",
			value: 1,
			want:  map[string]any{"a": []any{1}},
		},
		{
			name:    "dash with trailing tokens",
			doc:     map[string]any{"a": []any{map[string]any{}}},
			path:    "/a/-/b",
			value:   1,
			wantErr: "can't index into array with string -",
		},
		{
			name:  "nested insert",
			doc:   map[string]any{"a": map[string]any{"b": []any{"x"}}},
			path:  "/a/b/0",
			value: "w",
			want:  map[string]any{"a": map[string]any{"b": []any{"w", "x"}}},
		},
		{
			name:    "absent intermediate key",
			doc:     map[string]any{"a": 1},
			path:    "/b/c",
			value:   2,
			wantErr: "can't index into value null",
		},
		{
			name:    "scalar in the way",
			doc:     map[string]any{"a": "s"},
			path:    "/a/b",
			value:   2,
			wantErr: `can't index into value "s"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AddPath(tt.doc, tt.path, tt.value)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("AddPath(%q) error = nil, want %q", tt.path, tt.wantErr)
				}
				if err.Error() != tt.wantErr {
					t.Errorf("AddPath(%q) error = %q, want %q", tt.path, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("AddPath(%q) error = %v", tt.path, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("AddPath(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestRemovePath(t *testing.T) {
	tests := []struct {
		name    string
		doc     any
		path    string
		want    any
		wantErr string
	}{
		{
			name: "array element leaves no hole",
			doc:  map[string]any{"a": []any{1, 2, 3, 4}},
			path: "/a/2",
			want: map[string]any{"a": []any{1, 2, 4}},
		},
		{
			name: "object key",
			doc:  map[string]any{"a": 1, "b": 2},
			path: "/b",
			want: map[string]any{"a": 1},
		},
		{
			name: "nested key",
			doc:  map[string]any{"a": map[string]any{"b": 1, "c": 2}},
			path: "/a/b",
			want: map[string]any{"a": map[string]any{"c": 2}},
		},
		{
			name: "dash removes last element",
			doc:  map[string]any{"a": []any{1, 2, 3}},
			path: "/a/-",
			want: map[string]any{"a": []any{1, 2}},
		},
		{
			name: "empty pointer discards document",
			doc:  map[string]any{"a": 1},
			path: "",
			want: nil,
		},
		{
			name:    "dash on empty array",
			doc:     map[string]any{"a": []any{}},
			path:    "/a/-",
			wantErr: "can't use index '-' with empty array",
		},
		{
			name:    "missing key",
			doc:     map[string]any{"a": 1},
			path:    "/b",
			wantErr: "missing key b",
		},
		{
			name:    "out of bounds",
			doc:     map[string]any{"a": []any{1}},
			path:    "/a/1",
			wantErr: "out-of-bounds index 1",
		},
		{
			name:    "scalar in the way",
			doc:     map[string]any{"a": true},
			path:    "/a/b",
			wantErr: "can't index into value true",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RemovePath(tt.doc, tt.path)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("RemovePath(%q) error = nil, want %q", tt.path, tt.wantErr)
				}
				if err.Error() != tt.wantErr {
					t.Errorf("RemovePath(%q) error = %q, want %q", tt.path, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("RemovePath(%q) error = %v", tt.path, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("RemovePath(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

// TestAddPathDoesNotMutateInput verifies the copy-on-write contract: the
// original document keeps its value and untouched siblings are shared by
// reference rather than copied.
func TestAddPathDoesNotMutateInput(t *testing.T) {
	sibling := map[string]any{"deep": []any{1, 2}}
	doc := map[string]any{
		"edit":    map[string]any{"target": 1},
		"sibling": sibling,
	}

	got, err := AddPath(doc, "/edit/target", 2)
	if err != nil {
		t.Fatalf("AddPath error = %v", err)
	}

	want := map[string]any{
		"edit":    map[string]any{"target": 1},
		"sibling": map[string]any{"deep": []any{1, 2}},
	}
	if !reflect.DeepEqual(doc, want) {
		t.Errorf("input document changed: %v", doc)
	}

	out := got.(map[string]any)
	if out["edit"].(map[string]any)["target"] != 2 {
		t.Errorf("edit not applied: %v", out)
	}
	// Untouched sibling subtree must be the same map, not a copy.
	if !sameMap(out["sibling"].(map[string]any), sibling) {
		t.Error("untouched sibling was copied instead of shared")
	}
}

func TestRemovePathDoesNotMutateInput(t *testing.T) {
	arr := []any{1, 2, 3, 4}
	doc := map[string]any{"a": arr, "keep": map[string]any{"x": 1}}

	got, err := RemovePath(doc, "/a/2")
	if err != nil {
		t.Fatalf("RemovePath error = %v", err)
	}

	if !reflect.DeepEqual(arr, []any{1, 2, 3, 4}) {
		t.Errorf("input array changed: %v", arr)
	}
	out := got.(map[string]any)
	if !reflect.DeepEqual(out["a"], []any{1, 2, 4}) {
		t.Errorf("remove not applied: %v", out["a"])
	}
	if !sameMap(out["keep"].(map[string]any), doc["keep"].(map[string]any)) {
		t.Error("untouched sibling was copied instead of shared")
	}
}

// TestAddThenGetRoundTrip checks that a value bound at a path reads back
// from the same path.
func TestAddThenGetRoundTrip(t *testing.T) {
	doc := map[string]any{"a": map[string]any{}, "list": []any{1, 2}}

	paths := []struct {
		path  string
		value any
	}{
		{"/a/b", "v"},
		{"/list/1", "inserted"},
		{"/top", []any{true, nil}},
	}

	for _, p := range paths {
		out, err := AddPath(doc, p.path, p.value)
		if err != nil {
			t.Fatalf("AddPath(%q) error = %v", p.path, err)
		}
		got, err := GetPath(out, p.path)
		if err != nil {
			t.Fatalf("GetPath(%q) error = %v", p.path, err)
		}
		if !reflect.DeepEqual(got, p.value) {
			t.Errorf("GetPath(%q) = %v, want %v", p.path, got, p.value)
		}
	}
}

// TestRemoveThenAddRestores checks that replace decomposes into
// remove-then-add at non-shifting locations.
func TestRemoveThenAddRestores(t *testing.T) {
	doc := map[string]any{"a": map[string]any{"b": 7}, "c": 1}

	removed, err := RemovePath(doc, "/a/b")
	if err != nil {
		t.Fatalf("RemovePath error = %v", err)
	}
	restored, err := AddPath(removed, "/a/b", 7)
	if err != nil {
		t.Fatalf("AddPath error = %v", err)
	}
	if !reflect.DeepEqual(restored, doc) {
		t.Errorf("restored = %v, want %v", restored, doc)
	}
}

// sameMap reports whether two maps are the same underlying map value.
func sameMap(a, b map[string]any) bool {
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}
