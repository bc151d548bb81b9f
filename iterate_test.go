package tsugihagi

import (
	"reflect"
	"strings"
	"testing"
)

func TestApplyIterate(t *testing.T) {
	tests := []struct {
		name  string
		doc   any
		patch Patch
		want  any
	}{
		{
			name: "one sub operation per element",
			doc: map[string]any{
				"users": []any{
					map[string]any{"name": "ann"},
					map[string]any{"name": "bob"},
					map[string]any{"name": "cas"},
				},
			},
			patch: Patch{
				NewIterate("/users", Patch{
					NewAdd("/users/$?/active", true),
				}),
			},
			want: map[string]any{
				"users": []any{
					map[string]any{"name": "ann", "active": true},
					map[string]any{"name": "bob", "active": true},
					map[string]any{"name": "cas", "active": true},
				},
			},
		},
		{
			name: "custom replacement character",
			doc:  map[string]any{"a": []any{1, 2}},
			patch: Patch{
				{
					fieldOp:            OpIterate,
					fieldPath:          "/a",
					fieldReplacement:   "%i",
					fieldSubOperations: Patch{NewReplace("/a/%i", "x")},
				},
			},
			want: map[string]any{"a": []any{"x", "x"}},
		},
		{
			name: "substitution in from fields",
			doc: map[string]any{
				"src": []any{"a", "b"},
				"dst": []any{nil, nil},
			},
			patch: Patch{
				NewIterate("/src", Patch{
					NewCopy("/src/$?", "/dst/$?"),
				}),
			},
			want: map[string]any{
				"src": []any{"a", "b"},
				"dst": []any{"a", "b", nil, nil},
			},
		},
		{
			name: "empty array applies nothing",
			doc:  map[string]any{"a": []any{}},
			patch: Patch{
				NewIterate("/a", Patch{NewAdd("/never", 1)}),
			},
			want: map[string]any{"a": []any{}},
		},
		{
			name: "nested sub operations substituted",
			doc: map[string]any{
				"outer": []any{
					map[string]any{"inner": []any{1}},
				},
			},
			patch: Patch{
				NewIterate("/outer", Patch{
					{
						fieldOp:            OpIterate,
						fieldPath:          "/outer/$?/inner",
						fieldReplacement:   "%j",
						fieldSubOperations: Patch{NewReplace("/outer/$?/inner/%j", 0)},
					},
				}),
			},
			want: map[string]any{
				"outer": []any{
					map[string]any{"inner": []any{0}},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(tt.doc, tt.patch)
			if err != nil {
				t.Fatalf("Apply error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Apply = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestApplyIterateOrder checks that the sub-operation runs exactly once per
// element with indices substituted in order.
func TestApplyIterateOrder(t *testing.T) {
	doc := map[string]any{
		"items": []any{"a", "b", "c", "d"},
		"log":   []any{},
	}
	patch := Patch{
		NewIterate("/items", Patch{
			NewCopy("/items/$?", "/log/-"),
		}),
	}

	got, err := Apply(doc, patch)
	if err != nil {
		t.Fatalf("Apply error = %v", err)
	}
	log := got.(map[string]any)["log"]
	if want := []any{"a", "b", "c", "d"}; !reflect.DeepEqual(log, want) {
		t.Errorf("log = %v, want %v", log, want)
	}
}

func TestApplyIterateErrors(t *testing.T) {
	tests := []struct {
		name     string
		doc      any
		patch    Patch
		wantKind Kind
		wantMsg  string
	}{
		{
			name:     "missing sub_operations",
			doc:      map[string]any{"a": []any{1}},
			patch:    Patch{{fieldOp: OpIterate, fieldPath: "/a"}},
			wantKind: SyntaxError,
			wantMsg:  "missing `sub_operations`",
		},
		{
			name: "sub_operations not a sequence",
			doc:  map[string]any{"a": []any{1}},
			patch: Patch{
				{fieldOp: OpIterate, fieldPath: "/a", fieldSubOperations: "nope"},
			},
			wantKind: SyntaxError,
			wantMsg:  "missing `sub_operations`",
		},
		{
			name: "replacement character not a string",
			doc:  map[string]any{"a": []any{1}},
			patch: Patch{
				{
					fieldOp:            OpIterate,
					fieldPath:          "/a",
					fieldSubOperations: Patch{NewAdd("/b", 1)},
					fieldReplacement:   5,
				},
			},
			wantKind: SyntaxError,
			wantMsg:  "5 is not valid value for 'replacement_character'",
		},
		{
			name: "replacement character empty",
			doc:  map[string]any{"a": []any{1}},
			patch: Patch{
				{
					fieldOp:            OpIterate,
					fieldPath:          "/a",
					fieldSubOperations: Patch{NewAdd("/b", 1)},
					fieldReplacement:   "",
				},
			},
			wantKind: SyntaxError,
			wantMsg:  `"" is not valid value for 'replacement_character'`,
		},
		{
			name: "iterate over non array",
			doc:  map[string]any{"a": 5},
			patch: Patch{
				NewIterate("/a", Patch{NewAdd("/b", 1)}),
			},
			wantKind: PathError,
			wantMsg:  "can't iterate over value 5",
		},
		{
			name: "iterate path unresolvable",
			doc:  map[string]any{},
			patch: Patch{
				NewIterate("/a", Patch{NewAdd("/b", 1)}),
			},
			wantKind: PathError,
			wantMsg:  "missing key a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Apply(tt.doc, tt.patch)
			if err == nil {
				t.Fatal("Apply error = nil, want error")
			}
			if got := errorKind(err); got != tt.wantKind {
				t.Errorf("error kind = %v, want %v", got, tt.wantKind)
			}
			if !strings.HasPrefix(err.Error(), tt.wantMsg+" (patches[0], ") {
				t.Errorf("error = %q, want prefix %q", err, tt.wantMsg)
			}
		})
	}
}

// TestApplyIterateFailureProvenance checks that a sub-patch failure is
// annotated twice: with the index in the sub-operation list, then with the
// enclosing iterate operation's own index.
func TestApplyIterateFailureProvenance(t *testing.T) {
	doc := map[string]any{
		"items": []any{
			map[string]any{"ok": true},
			map[string]any{},
		},
	}
	patch := Patch{
		NewIterate("/items", Patch{
			NewRemove("/items/$?/ok"),
		}),
	}

	_, err := Apply(doc, patch)
	if err == nil {
		t.Fatal("Apply error = nil, want path error")
	}
	if !IsPathError(err) {
		t.Errorf("error kind = %v, want PathError", err)
	}
	msg := err.Error()
	if !strings.HasPrefix(msg, "missing key ok (patches[0], ") {
		t.Errorf("error = %q, want sub-operation provenance first", msg)
	}
	// The second iteration (index 1) fails, but sub-operations are
	// indexed relative to their own list, so both annotations read
	// patches[0].
	if strings.Count(msg, "(patches[0], ") != 2 {
		t.Errorf("error = %q, want two provenance annotations", msg)
	}
}

func TestSubstituteOperationLeavesInputUntouched(t *testing.T) {
	op := NewAdd("/items/$?/x", 1)
	_ = substituteOperation(op, "$?", "3")
	if op[fieldPath] != "/items/$?/x" {
		t.Errorf("input operation mutated: %v", op)
	}
}
