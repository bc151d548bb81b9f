package paths

import (
	"fmt"
	"go/types"
	"reflect"
	"regexp"
	"strings"
	"unicode"
)

const remapTagName = "tsugihagi"

// PathInfo represents a complete path to a document value.
type PathInfo struct {
	// JSONPointer is the full path, e.g., "/hosts/{key}/url"
	JSONPointer string
	// ConstName is the constant name if static, e.g., "PathServerPort"
	ConstName string
	// FuncName is the function name if dynamic, e.g., "PathHostsUrl"
	FuncName string
	// DynamicParams holds parameters for dynamic paths
	DynamicParams []ParamInfo
	// FieldName is the original Go field name
	FieldName string
	// Comment is a description for documentation
	Comment string
}

// ParamInfo describes a dynamic parameter.
type ParamInfo struct {
	Name string // key, index, key2, index2...
	Type string // "string" for map, "int" for slice
}

// AnalysisResult holds all discovered paths.
type AnalysisResult struct {
	Paths []PathInfo
}

// analysisContext tracks state during recursive analysis.
type analysisContext struct {
	currentPath   string
	dynamicParams []ParamInfo
	tagName       string
	mapKeyCount   int
	sliceIdxCount int
}

func newAnalysisContext(tagName string) *analysisContext {
	return &analysisContext{tagName: tagName}
}

func (ctx *analysisContext) withPath(segment string) *analysisContext {
	return &analysisContext{
		currentPath:   ctx.currentPath + "/" + segment,
		dynamicParams: append([]ParamInfo{}, ctx.dynamicParams...),
		tagName:       ctx.tagName,
		mapKeyCount:   ctx.mapKeyCount,
		sliceIdxCount: ctx.sliceIdxCount,
	}
}

func (ctx *analysisContext) withMapKey() *analysisContext {
	paramName := "key"
	if ctx.mapKeyCount > 0 {
		paramName = "key" + string(rune('0'+ctx.mapKeyCount+1))
	}
	return &analysisContext{
		currentPath:   ctx.currentPath + "/{" + paramName + "}",
		dynamicParams: append(append([]ParamInfo{}, ctx.dynamicParams...), ParamInfo{Name: paramName, Type: "string"}),
		tagName:       ctx.tagName,
		mapKeyCount:   ctx.mapKeyCount + 1,
		sliceIdxCount: ctx.sliceIdxCount,
	}
}

func (ctx *analysisContext) withSliceIndex() *analysisContext {
	paramName := "index"
	if ctx.sliceIdxCount > 0 {
		paramName = "index" + string(rune('0'+ctx.sliceIdxCount+1))
	}
	return &analysisContext{
		currentPath:   ctx.currentPath + "/{" + paramName + "}",
		dynamicParams: append(append([]ParamInfo{}, ctx.dynamicParams...), ParamInfo{Name: paramName, Type: "int"}),
		tagName:       ctx.tagName,
		mapKeyCount:   ctx.mapKeyCount,
		sliceIdxCount: ctx.sliceIdxCount + 1,
	}
}

func (ctx *analysisContext) isDynamic() bool {
	return len(ctx.dynamicParams) > 0
}

// analyzeStruct analyzes a struct type and returns all path information.
func analyzeStruct(structType *types.Struct, tagName string) (*AnalysisResult, error) {
	result := &AnalysisResult{
		Paths: make([]PathInfo, 0),
	}
	analyzeStructRecursive(structType, newAnalysisContext(tagName), result)
	return result, nil
}

func analyzeStructRecursive(structType *types.Struct, ctx *analysisContext, result *AnalysisResult) {
	for i := 0; i < structType.NumFields(); i++ {
		field := structType.Field(i)

		if !field.Exported() {
			continue
		}

		tag := structType.Tag(i)
		fieldKey := getFieldKey(field.Name(), tag, ctx.tagName)
		if fieldKey == "-" {
			continue
		}

		remapPath, isAbsolute, skipped := parseRemapTag(tag)
		if skipped {
			continue
		}

		var effectivePath string
		var effectiveCtx *analysisContext

		switch {
		case remapPath != "" && isAbsolute:
			// Absolute remap ignores the current context and resets
			// dynamic params.
			effectivePath = remapPath
			effectiveCtx = &analysisContext{
				currentPath: remapPath,
				tagName:     ctx.tagName,
			}
		case remapPath != "":
			effectivePath = ctx.currentPath + remapPath
			effectiveCtx = ctx.withPath(strings.TrimPrefix(remapPath, "/"))
			effectiveCtx.currentPath = effectivePath
		default:
			effectivePath = ctx.currentPath + "/" + fieldKey
			effectiveCtx = ctx.withPath(fieldKey)
		}

		analyzeFieldType(field.Type(), field.Name(), effectivePath, effectiveCtx, result)
	}
}

func analyzeFieldType(fieldType types.Type, fieldName, path string, ctx *analysisContext, result *AnalysisResult) {
	if ptr, ok := fieldType.(*types.Pointer); ok {
		fieldType = ptr.Elem()
	}

	// External package types (like time.Time) are leaf values.
	if named, ok := fieldType.(*types.Named); ok {
		if isExternalType(named) {
			addPathInfo(path, fieldName, ctx, result)
			return
		}
		fieldType = named.Underlying()
	}

	switch t := fieldType.(type) {
	case *types.Struct:
		analyzeStructRecursive(t, ctx, result)

	case *types.Slice, *types.Array:
		// The container itself is always addressable.
		addPathInfo(path, fieldName, ctx, result)

		var elemType types.Type
		if slice, ok := t.(*types.Slice); ok {
			elemType = slice.Elem()
		} else if arr, ok := t.(*types.Array); ok {
			elemType = arr.Elem()
		}

		if structElem, ok := underlyingStruct(elemType); ok {
			analyzeStructRecursive(structElem, ctx.withSliceIndex(), result)
		}

	case *types.Map:
		addPathInfo(path, fieldName, ctx, result)

		if structValue, ok := underlyingStruct(t.Elem()); ok {
			analyzeStructRecursive(structValue, ctx.withMapKey(), result)
		}

	default:
		// Leaf value (primitives, strings, etc.)
		addPathInfo(path, fieldName, ctx, result)
	}
}

// underlyingStruct unwraps pointers and named types and reports whether
// the result is a struct worth recursing into.
func underlyingStruct(t types.Type) (*types.Struct, bool) {
	if ptr, ok := t.(*types.Pointer); ok {
		t = ptr.Elem()
	}
	if named, ok := t.(*types.Named); ok {
		if isExternalType(named) {
			return nil, false
		}
		t = named.Underlying()
	}
	s, ok := t.(*types.Struct)
	return s, ok
}

func addPathInfo(path, fieldName string, ctx *analysisContext, result *AnalysisResult) {
	info := PathInfo{
		JSONPointer:   path,
		FieldName:     fieldName,
		DynamicParams: append([]ParamInfo{}, ctx.dynamicParams...),
	}

	if ctx.isDynamic() {
		info.FuncName = generateFuncName(path)
		info.Comment = fmt.Sprintf("Path pattern: %s", path)
	} else {
		info.ConstName = generateConstName(path)
	}

	result.Paths = append(result.Paths, info)
}

// isExternalType checks if a named type comes from outside the package
// under analysis. Such types (time.Time, sql.NullString, ...) are
// treated as leaf values.
func isExternalType(named *types.Named) bool {
	obj := named.Obj()
	if obj == nil {
		return false
	}
	pkg := obj.Pkg()
	if pkg == nil {
		// Built-in types
		return false
	}
	pkgPath := pkg.Path()
	return pkgPath != "" && (strings.HasPrefix(pkgPath, "time") ||
		strings.HasPrefix(pkgPath, "database/sql") ||
		strings.HasPrefix(pkgPath, "encoding/json") ||
		strings.HasPrefix(pkgPath, "net/") ||
		strings.HasPrefix(pkgPath, "crypto/") ||
		!isLocalPackage(pkgPath))
}

// isLocalPackage reports whether a package path looks like a user
// package. Standard library paths have no dot in the first segment.
func isLocalPackage(pkgPath string) bool {
	firstSegment := pkgPath
	if idx := strings.Index(pkgPath, "/"); idx > 0 {
		firstSegment = pkgPath[:idx]
	}
	return strings.Contains(firstSegment, ".")
}

// getFieldKey returns the field key from the tag or field name.
func getFieldKey(fieldName, tag, tagName string) string {
	structTag := reflect.StructTag(tag)
	tagValue := structTag.Get(tagName)
	if tagValue == "" {
		return fieldName
	}

	// Same convention as encoding/json: split by comma, use first part.
	if idx := strings.Index(tagValue, ","); idx >= 0 {
		tagValue = tagValue[:idx]
	}
	if tagValue == "" {
		return fieldName
	}
	return tagValue
}

// parseRemapTag extracts the path remap from a tsugihagi tag.
//
// Formats:
//   - `tsugihagi:"-"`            skip the field entirely
//   - `tsugihagi:"/abs/path"`    absolute path from the document root
//   - `tsugihagi:"segment"`      relative to the current context
//   - `tsugihagi:"./segment"`    relative (explicit form)
func parseRemapTag(tag string) (path string, isAbsolute, skipped bool) {
	structTag := reflect.StructTag(tag)
	value := strings.TrimSpace(structTag.Get(remapTagName))
	if value == "" {
		return "", false, false
	}
	if value == "-" {
		return "", false, true
	}

	if strings.HasPrefix(value, "./") {
		return "/" + value[2:], false, false
	}
	if strings.HasPrefix(value, "/") {
		return value, true, false
	}
	return "/" + value, false, false
}

// generateConstName generates a constant name from a JSON Pointer path.
func generateConstName(path string) string {
	var parts []string
	for _, seg := range splitPath(path) {
		parts = append(parts, toCamelCase(seg))
	}
	return "Path" + strings.Join(parts, "")
}

// generateFuncName generates a function name from a JSON Pointer path.
// Dynamic segments (e.g., {key}) are skipped.
func generateFuncName(path string) string {
	var parts []string
	for _, seg := range splitPath(path) {
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			continue
		}
		parts = append(parts, toCamelCase(seg))
	}
	return "Path" + strings.Join(parts, "")
}

func splitPath(path string) []string {
	if path == "" || path == "/" {
		return nil
	}
	return strings.Split(strings.TrimPrefix(path, "/"), "/")
}

var separatorRegex = regexp.MustCompile(`[_\-\.]+`)

func toCamelCase(s string) string {
	parts := separatorRegex.Split(s, -1)

	var result strings.Builder
	for _, part := range parts {
		if len(part) > 0 {
			runes := []rune(part)
			runes[0] = unicode.ToUpper(runes[0])
			result.WriteString(string(runes))
		}
	}
	return result.String()
}
