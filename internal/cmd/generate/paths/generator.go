package paths

import (
	"fmt"
	"go/format"
	"strings"
)

// GeneratorConfig holds settings for the code generator.
type GeneratorConfig struct {
	PackageName string
	TypeName    string
	SourceFile  string
	TagName     string
	Output      string
}

const jsonptrImport = "github.com/yacchi/tsugihagi/jsonptr"

// generateCode renders the Go source for the analyzed paths.
func generateCode(analysis *AnalysisResult, config GeneratorConfig) ([]byte, error) {
	var consts, funcs []PathInfo
	needEscape := false
	needItoa := false
	for _, p := range analysis.Paths {
		if p.FuncName != "" {
			funcs = append(funcs, p)
			for _, param := range p.DynamicParams {
				switch param.Type {
				case "string":
					needEscape = true
				case "int":
					needItoa = true
				}
			}
		} else {
			consts = append(consts, p)
		}
	}

	var b strings.Builder

	fmt.Fprintf(&b, "// Code generated by tsugihagi generate paths; DO NOT EDIT.\n")
	fmt.Fprintf(&b, "// Source: %s (type %s, tag %q)\n\n", config.SourceFile, config.TypeName, config.TagName)
	fmt.Fprintf(&b, "package %s\n\n", config.PackageName)

	switch {
	case needEscape && needItoa:
		fmt.Fprintf(&b, "import (\n\t\"strconv\"\n\n\t%q\n)\n\n", jsonptrImport)
	case needEscape:
		fmt.Fprintf(&b, "import %q\n\n", jsonptrImport)
	case needItoa:
		fmt.Fprintf(&b, "import \"strconv\"\n\n")
	}

	if len(consts) > 0 {
		fmt.Fprintf(&b, "// JSON Pointer paths for %s.\nconst (\n", config.TypeName)
		for _, p := range consts {
			fmt.Fprintf(&b, "\t%s = %q\n", p.ConstName, p.JSONPointer)
		}
		fmt.Fprintf(&b, ")\n\n")
	}

	for _, p := range funcs {
		var params []string
		for _, param := range p.DynamicParams {
			params = append(params, param.Name+" "+param.Type)
		}
		fmt.Fprintf(&b, "// %s returns the path for pattern %s.\n", p.FuncName, p.JSONPointer)
		fmt.Fprintf(&b, "func %s(%s) string {\n", p.FuncName, strings.Join(params, ", "))
		fmt.Fprintf(&b, "\treturn %s\n}\n\n", buildFunctionBody(p.JSONPointer, p.DynamicParams))
	}

	src, err := format.Source([]byte(b.String()))
	if err != nil {
		return nil, fmt.Errorf("failed to format generated code: %w", err)
	}
	return src, nil
}

// buildFunctionBody builds the concatenation expression for a dynamic
// path, e.g. "/hosts/" + jsonptr.Escape(key) + "/url".
func buildFunctionBody(path string, params []ParamInfo) string {
	types := make(map[string]string, len(params))
	for _, p := range params {
		types[p.Name] = p.Type
	}

	var exprs []string
	literal := ""
	for _, seg := range splitPath(path) {
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			name := seg[1 : len(seg)-1]
			exprs = append(exprs, fmt.Sprintf("%q", literal+"/"))
			if types[name] == "int" {
				exprs = append(exprs, fmt.Sprintf("strconv.Itoa(%s)", name))
			} else {
				exprs = append(exprs, fmt.Sprintf("jsonptr.Escape(%s)", name))
			}
			literal = ""
			continue
		}
		literal += "/" + seg
	}
	if literal != "" {
		exprs = append(exprs, fmt.Sprintf("%q", literal))
	}
	return strings.Join(exprs, " + ")
}
