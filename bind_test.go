package tsugihagi

import (
	"reflect"
	"testing"
)

type serverConfig struct {
	Host     string   `json:"host"`
	Port     int      `json:"port"`
	Features []string `json:"features"`
}

func TestBind(t *testing.T) {
	doc := map[string]any{
		"host": "localhost",
		// JSON decoding produces float64 for every number; Bind must
		// still fill the int field.
		"port":     float64(8080),
		"features": []any{"a", "b"},
	}

	var cfg serverConfig
	if err := Bind(doc, &cfg); err != nil {
		t.Fatalf("Bind error = %v", err)
	}

	want := serverConfig{Host: "localhost", Port: 8080, Features: []string{"a", "b"}}
	if !reflect.DeepEqual(cfg, want) {
		t.Errorf("Bind = %+v, want %+v", cfg, want)
	}
}

func TestBindAfterApply(t *testing.T) {
	doc := map[string]any{"host": "localhost", "port": 80}
	patch := Patch{
		NewReplace("/port", 8443),
		NewAdd("/features", []any{"tls"}),
	}

	out, err := Apply(doc, patch)
	if err != nil {
		t.Fatalf("Apply error = %v", err)
	}

	var cfg serverConfig
	if err := Bind(out, &cfg); err != nil {
		t.Fatalf("Bind error = %v", err)
	}
	want := serverConfig{Host: "localhost", Port: 8443, Features: []string{"tls"}}
	if !reflect.DeepEqual(cfg, want) {
		t.Errorf("Bind = %+v, want %+v", cfg, want)
	}
}

func TestBindStrictTypes(t *testing.T) {
	doc := map[string]any{"port": "8080"}

	var cfg serverConfig
	if err := Bind(doc, &cfg); err != nil {
		t.Fatalf("Bind (weak) error = %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}

	var strict serverConfig
	if err := Bind(doc, &strict, WithStrictTypes()); err == nil {
		t.Error("Bind with WithStrictTypes() accepted string for int field")
	}
}

func TestBindTagName(t *testing.T) {
	type tagged struct {
		Name string `config:"title"`
	}
	doc := map[string]any{"title": "x"}

	var v tagged
	if err := Bind(doc, &v, WithTagName("config")); err != nil {
		t.Fatalf("Bind error = %v", err)
	}
	if v.Name != "x" {
		t.Errorf("Name = %q, want %q", v.Name, "x")
	}
}
