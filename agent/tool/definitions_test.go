package tool

import (
	"testing"
)

func TestCatalogShape(t *testing.T) {
	t.Parallel()

	defs := Definitions()
	if len(defs) != 25 {
		t.Fatalf("catalog size = %d, want 25", len(defs))
	}

	seen := map[string]bool{}
	for _, def := range defs {
		if def.Name == "" || def.Description == "" {
			t.Fatalf("definition missing name or description: %+v", def)
		}
		if seen[def.Name] {
			t.Fatalf("duplicate tool name %q", def.Name)
		}
		seen[def.Name] = true
	}
}

func TestByName(t *testing.T) {
	t.Parallel()

	def, ok := ByName("transfer_funds")
	if !ok {
		t.Fatalf("transfer_funds should exist")
	}
	required := 0
	for _, p := range def.Params {
		if p.Required {
			required++
		}
	}
	if required != 3 {
		t.Fatalf("transfer_funds required params = %d, want 3", required)
	}

	if _, ok := ByName("launch_rocket"); ok {
		t.Fatalf("unknown name should not resolve")
	}
}

func TestEinoToolInfos(t *testing.T) {
	t.Parallel()

	infos := EinoToolInfos()
	if len(infos) != len(Definitions()) {
		t.Fatalf("infos = %d, want %d", len(infos), len(Definitions()))
	}
	for _, info := range infos {
		if info.Name == "" || info.ParamsOneOf == nil {
			t.Fatalf("incomplete tool info: %+v", info)
		}
	}
}

func TestOpenAIToolParams(t *testing.T) {
	t.Parallel()

	tools := OpenAIToolParams()
	if len(tools) != len(Definitions()) {
		t.Fatalf("tools = %d, want %d", len(tools), len(Definitions()))
	}
	for _, tp := range tools {
		if tp.Function.Name == "" {
			t.Fatalf("tool param missing function name")
		}
		params := tp.Function.Parameters
		if params["type"] != "object" {
			t.Fatalf("%s: parameters schema must be an object", tp.Function.Name)
		}
		if _, ok := params["properties"].(map[string]any); !ok {
			t.Fatalf("%s: properties missing", tp.Function.Name)
		}
	}
}
