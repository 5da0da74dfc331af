//go:build !wasm

package sqlorm

import (
	"go/ast"
	"go/parser"
	"go/token"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/tinywasm/fmt"
)

type FieldInfo struct {
	Name       string // Go field name
	ColumnName string
	Kind       FieldKind
	DDL        string // column type override, empty for the kind default
	Default    string // literal from db:"default=...", empty for none
	IsPK       bool
	GoType     string
}

type StructInfo struct {
	Name              string
	TableName         string
	PackageName       string
	Fields            []FieldInfo
	TableNameDeclared bool
	SourceFile        string
}

// detectTableName scans the AST for func (X) TableName() string on structName.
// Returns the literal return value if found, "" otherwise.
func detectTableName(node *ast.File, structName string) string {
	for _, decl := range node.Decls {
		funcDecl, ok := decl.(*ast.FuncDecl)
		if !ok || funcDecl.Recv == nil || len(funcDecl.Recv.List) == 0 {
			continue
		}
		if funcDecl.Name.Name != "TableName" {
			continue
		}
		recv := funcDecl.Recv.List[0].Type
		recvName := ""
		if ident, ok := recv.(*ast.Ident); ok {
			recvName = ident.Name
		} else if star, ok := recv.(*ast.StarExpr); ok {
			if ident, ok := star.X.(*ast.Ident); ok {
				recvName = ident.Name
			}
		}
		if recvName != structName {
			continue
		}
		if funcDecl.Body != nil && len(funcDecl.Body.List) == 1 {
			if ret, ok := funcDecl.Body.List[0].(*ast.ReturnStmt); ok && len(ret.Results) == 1 {
				if lit, ok := ret.Results[0].(*ast.BasicLit); ok {
					return fmt.Convert(lit.Value).TrimPrefix(`"`).TrimSuffix(`"`).String()
				}
			}
		}
	}
	return ""
}

// dbTag extracts the db:"..." value from a raw struct tag.
func dbTag(tag *ast.BasicLit) string {
	if tag == nil {
		return ""
	}
	tagVal := fmt.Convert(tag.Value).TrimPrefix("`").TrimSuffix("`").String()
	for _, p := range fmt.Convert(tagVal).Split(" ") {
		if fmt.HasPrefix(p, "db:\"") {
			return fmt.Convert(p).TrimPrefix(`db:"`).TrimSuffix(`"`).String()
		}
	}
	return ""
}

func kindOf(typeStr string) (FieldKind, bool) {
	switch typeStr {
	case "string":
		return KindString, true
	case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64":
		return KindInteger, true
	case "float32", "float64":
		return KindFloat, true
	case "bool":
		return KindBool, true
	}
	return 0, false
}

// ParseStruct parses a single struct from a Go file and returns its metadata.
// Fields tagged db:"pk" are primary keys; without any such tag the first
// field fmt.IDorPrimaryKey recognizes is used. Exactly one primary key must
// result.
func (o *Ormc) ParseStruct(structName string, goFile string) (StructInfo, error) {
	if structName == "" {
		return StructInfo{}, fmt.Err("Please provide a struct name")
	}

	if goFile == "" {
		return StructInfo{}, fmt.Err("goFile path cannot be empty")
	}

	fset := token.NewFileSet()
	node, err := parser.ParseFile(fset, goFile, nil, parser.ParseComments)
	if err != nil {
		return StructInfo{}, fmt.Err(err, "Failed to parse file")
	}

	var targetStruct *ast.StructType
	ast.Inspect(node, func(n ast.Node) bool {
		if typeSpec, ok := n.(*ast.TypeSpec); ok && typeSpec.Name.Name == structName {
			if structType, ok := typeSpec.Type.(*ast.StructType); ok {
				targetStruct = structType
				return false
			}
		}
		return targetStruct == nil
	})

	if targetStruct == nil {
		return StructInfo{}, fmt.Err("Struct not found in file")
	}

	tableName := detectTableName(node, structName)
	declared := tableName != ""
	if !declared {
		tableName = structName
	}

	info := StructInfo{
		Name:              structName,
		TableName:         tableName,
		PackageName:       node.Name.Name,
		TableNameDeclared: declared,
	}

	explicitPK := 0
	autoPK := -1
	for _, field := range targetStruct.Fields.List {
		if len(field.Names) == 0 {
			continue // Anonymous field, skip for now
		}

		fieldName := field.Names[0].Name
		if !ast.IsExported(fieldName) {
			continue
		}

		tag := dbTag(field.Tag)
		if tag == "-" {
			continue
		}

		typeStr := ""
		if ident, ok := field.Type.(*ast.Ident); ok {
			typeStr = ident.Name
		} else if sel, ok := field.Type.(*ast.SelectorExpr); ok {
			if pkgIdent, ok := sel.X.(*ast.Ident); ok {
				typeStr = pkgIdent.Name + "." + sel.Sel.Name
			}
		}

		kind, ok := kindOf(typeStr)
		if !ok {
			o.log(fmt.Sprintf("Warning: unsupported type %s for field %s.%s; skipping. Add db:\"-\" to suppress.", typeStr, structName, fieldName))
			continue
		}

		fi := FieldInfo{
			Name:       fieldName,
			ColumnName: fmt.Convert(fieldName).SnakeLow().String(),
			Kind:       kind,
			GoType:     typeStr,
		}

		if tag != "" {
			for _, p := range fmt.Convert(tag).Split(",") {
				switch {
				case p == "pk":
					fi.IsPK = true
				case p == "text":
					if kind != KindString {
						return StructInfo{}, errWith(ErrValidation, "text tag requires a string field:", structName+"."+fieldName)
					}
					fi.Kind = KindText
				case fmt.HasPrefix(p, "ddl="):
					fi.DDL = fmt.Convert(p).TrimPrefix("ddl=").String()
				case fmt.HasPrefix(p, "default="):
					fi.Default = fmt.Convert(p).TrimPrefix("default=").String()
				}
			}
		}
		if fi.Default != "" {
			if _, err := defaultLiteral(fi.Kind, fi.Default); err != nil {
				return StructInfo{}, errWith(ErrValidation, "invalid default", strconv.Quote(fi.Default), "for", structName+"."+fieldName)
			}
		}
		if fi.IsPK {
			if !fi.Kind.keyable() {
				return StructInfo{}, errWith(ErrValidation, structName+"."+fieldName, "cannot be a primary key")
			}
			explicitPK++
		}

		if isID, isPK := fmt.IDorPrimaryKey(tableName, fieldName); (isID || isPK) && autoPK < 0 && fi.Kind.keyable() {
			autoPK = len(info.Fields)
		}

		info.Fields = append(info.Fields, fi)
	}

	switch {
	case explicitPK > 1:
		return StructInfo{}, errWith(ErrDuplicatePrimaryKey, "in", structName)
	case explicitPK == 0 && autoPK >= 0:
		info.Fields[autoPK].IsPK = true
	case explicitPK == 0 && len(info.Fields) > 0:
		return StructInfo{}, errWith(ErrMissingPrimaryKey, "in", structName)
	}

	return info, nil
}

// GenerateForStruct reads the Go File and generates the model declaration for a given struct name.
func (o *Ormc) GenerateForStruct(structName string, goFile string) error {
	info, err := o.ParseStruct(structName, goFile)
	if err != nil {
		return err
	}
	if len(info.Fields) == 0 {
		return nil
	}
	return o.GenerateForFile([]StructInfo{info}, goFile)
}

func factoryName(k FieldKind) string {
	switch k {
	case KindInteger:
		return "sqlorm.IntegerField"
	case KindFloat:
		return "sqlorm.FloatField"
	case KindBool:
		return "sqlorm.BooleanField"
	case KindText:
		return "sqlorm.TextField"
	}
	return "sqlorm.StringField"
}

// defaultLiteral renders a db:"default=..." value as Go source for kind.
func defaultLiteral(kind FieldKind, raw string) (string, error) {
	switch kind {
	case KindInteger:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return "", err
		}
		return "int64(" + strconv.FormatInt(n, 10) + ")", nil
	case KindFloat:
		x, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return "", err
		}
		if math.IsInf(x, 0) || math.IsNaN(x) {
			return "", ErrValidation
		}
		return "float64(" + strconv.FormatFloat(x, 'g', -1, 64) + ")", nil
	case KindBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return "", err
		}
		return strconv.FormatBool(b), nil
	}
	return strconv.Quote(raw), nil
}

// GenerateForFile writes model declarations for all infos into one file.
func (o *Ormc) GenerateForFile(infos []StructInfo, sourceFile string) error {
	if len(infos) == 0 {
		return nil
	}
	buf := fmt.Convert()

	// File Header
	buf.Write(fmt.Sprintf("// Code generated by ormc; DO NOT EDIT.\n"))
	buf.Write(fmt.Sprintf("package %s\n\n", infos[0].PackageName))

	buf.Write("import (\n")
	buf.Write("\t\"context\"\n\n")
	buf.Write("\t\"github.com/tinywasm/sqlorm\"\n")
	buf.Write(")\n\n")

	for _, info := range infos {
		buf.Write(fmt.Sprintf("// %sModel is the declared schema of %s.\n", info.Name, info.Name))
		buf.Write(fmt.Sprintf("var %sModel = sqlorm.MustDeclareTable(\"%s\", \"%s\",\n", info.Name, info.Name, info.TableName))
		for _, f := range info.Fields {
			var opts []string
			if f.IsPK {
				opts = append(opts, "sqlorm.PrimaryKey()")
			}
			if f.DDL != "" {
				opts = append(opts, "sqlorm.DDL("+strconv.Quote(f.DDL)+")")
			}
			if f.Default != "" {
				lit, err := defaultLiteral(f.Kind, f.Default)
				if err != nil {
					return errWith(ErrValidation, "invalid default for", info.Name+"."+f.Name)
				}
				opts = append(opts, "sqlorm.Default("+lit+")")
			}
			args := "\"" + f.ColumnName + "\""
			if len(opts) > 0 {
				args += ", " + fmt.Convert(opts).Join(", ").String()
			}
			buf.Write(fmt.Sprintf("\t%s(%s),\n", factoryName(f.Kind), args))
		}
		buf.Write(")\n\n")

		// Metadata Descriptors
		buf.Write(fmt.Sprintf("var %sMeta = struct {\n", info.Name))
		buf.Write("\tTableName string\n")
		for _, f := range info.Fields {
			buf.Write(fmt.Sprintf("\t%s string\n", f.Name))
		}
		buf.Write("}{\n")
		buf.Write(fmt.Sprintf("\tTableName: \"%s\",\n", info.TableName))
		for _, f := range info.Fields {
			buf.Write(fmt.Sprintf("\t%s: \"%s\",\n", f.Name, f.ColumnName))
		}
		buf.Write("}\n\n")

		// Typed lookup
		buf.Write(fmt.Sprintf("func Find%s(ctx context.Context, db *sqlorm.DB, pk any) (*sqlorm.Record, error) {\n", info.Name))
		buf.Write(fmt.Sprintf("\treturn db.Find(ctx, %sModel, pk)\n", info.Name))
		buf.Write("}\n\n")
	}

	outName := fmt.Convert(sourceFile).TrimSuffix(".go").String() + "_orm.go"
	return os.WriteFile(outName, buf.Bytes(), 0644)
}

// collectAllStructs walks rootDir and returns a map of all parsed StructInfo
// keyed by struct name, plus the discovery order of structs and files.
func (o *Ormc) collectAllStructs() (map[string]StructInfo, []string, []string, error) {
	all := make(map[string]StructInfo)
	var structOrder []string
	var fileOrder []string
	fileSeen := make(map[string]bool)

	err := filepath.Walk(o.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			dirName := info.Name()
			if dirName == "vendor" || dirName == ".git" || dirName == "testdata" {
				return filepath.SkipDir
			}
			return nil
		}

		fileName := info.Name()
		if fileName != "model.go" && fileName != "models.go" {
			return nil
		}

		fset := token.NewFileSet()
		node, err := parser.ParseFile(fset, path, nil, parser.ParseComments)
		if err != nil {
			return nil // Skip unparseable files
		}

		for _, decl := range node.Decls {
			genDecl, ok := decl.(*ast.GenDecl)
			if !ok || genDecl.Tok != token.TYPE {
				continue
			}
			for _, spec := range genDecl.Specs {
				typeSpec, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				if _, ok := typeSpec.Type.(*ast.StructType); !ok {
					continue
				}
				info, err := o.ParseStruct(typeSpec.Name.Name, path)
				if err != nil {
					o.log(fmt.Sprintf("Skipping %s in %s: %v", typeSpec.Name.Name, path, err))
					continue
				}
				if len(info.Fields) == 0 {
					o.log(fmt.Sprintf("Warning: %s has no mappable fields; skipping", typeSpec.Name.Name))
					continue
				}
				info.SourceFile = path
				all[info.Name] = info
				structOrder = append(structOrder, info.Name)
				if !fileSeen[path] {
					fileSeen[path] = true
					fileOrder = append(fileOrder, path)
				}
			}
		}
		return nil
	})

	return all, structOrder, fileOrder, err
}

// generateAll groups structs by source file path and calls GenerateForFile
// once per file.
func (o *Ormc) generateAll(all map[string]StructInfo, structOrder []string, fileOrder []string) error {
	byFile := make(map[string][]StructInfo)
	for _, structName := range structOrder {
		info := all[structName]
		byFile[info.SourceFile] = append(byFile[info.SourceFile], info)
	}

	for _, sourceFile := range fileOrder {
		if err := o.GenerateForFile(byFile[sourceFile], sourceFile); err != nil {
			o.log(fmt.Sprintf("Failed to write output for %s: %v", sourceFile, err))
		}
	}
	return nil
}

// Run is the entry point for the CLI tool.
func (o *Ormc) Run() error {
	all, structOrder, fileOrder, err := o.collectAllStructs()
	if err != nil {
		return fmt.Err(err, "error walking directory")
	}
	if len(all) == 0 {
		return fmt.Err("no models found")
	}
	return o.generateAll(all, structOrder, fileOrder)
}
