package emit

import (
	"strconv"
	"text/template"
)

var templates = template.Must(template.New("emit").Funcs(template.FuncMap{
	"quote": strconv.Quote,
}).Parse(`
{{- define "struct" -}}
type {{.Name}} struct {
{{- range .Fields}}
	{{.Name}} {{.Type}}{{if .Tag}} {{.Tag}}{{end}}
{{- end}}
}
{{end}}

{{- define "enum" -}}
type {{.Name}} {{.Underlying}}

const (
{{- range .Consts}}
	{{.Name}} {{$.Name}} = {{.Value}}
{{- end}}
)
{{end}}

{{- define "describe" -}}
{{- $rt := .N.Runtime -}}
var {{.N.Helper .Name "Descriptor"}} = {{$rt}}.Descriptor{
	Name: {{quote .Name}},
	Kind: {{$rt}}.{{.Kind}},
{{- if .Fields}}
	Fields: []{{$rt}}.Field{
{{- range .Fields}}
		{Name: {{quote .Name}}, GoName: {{quote .GoName}}, Type: {{quote .TypeText}}, Index: {{.Index}}},
{{- end}}
	},
{{- end}}
{{- if .Variants}}
	Variants: []{{$rt}}.Variant{
{{- range .Variants}}
		{Name: {{quote .Name}}, Value: {{.Value}}},
{{- end}}
	},
{{- end}}
}

// StructName returns the declared name of {{.Name}}.
func ({{.Name}}) StructName() string { return {{quote .Name}} }

// FieldCount returns the number of declared fields of {{.Name}}.
func ({{.Name}}) FieldCount() int { return {{.FieldCount}} }

func ({{.Name}}) Describe() {{$rt}}.Descriptor { return {{.N.Helper .Name "Descriptor"}} }
{{end}}

{{- define "table" -}}
{{- $rt := .N.Runtime -}}
var {{.N.Helper .Name .Table}} = [...]{{$rt}}.Range[{{.Elem}}]{
{{- range .Rows}}
	{Start: {{.Start}}, End: {{.End}}, {{if .Open}}Open: true, {{end}}Name: {{quote .Name}}},
{{- end}}
}

var {{.N.Helper .Name .Values}} = [...]{{.Name}}{
{{- range .Rows}}
	{{.Const}},
{{- end}}
}
{{end}}

{{- define "ranges" -}}
{{- $rt := .N.Runtime -}}
{{- $table := .N.Helper .Name .Table -}}
{{- $v := .N.Local "v" -}}
{{- $i := .N.Local "i" -}}
{{template "table" .}}
// {{.Name}}FromValue returns the variant whose range contains the given value.
func {{.Name}}FromValue({{$v}} int64) ({{.Name}}, bool) {
	if {{$i}} := {{$rt}}.Lookup({{$table}}[:], {{$v}}); {{$i}} >= 0 {
		return {{.N.Helper .Name .Values}}[{{$i}}], true
	}
	return 0, false
}

// VariantName returns the name of the variant whose range contains the value.
func ({{$v}} {{.Name}}) VariantName() string {
	if {{$i}} := {{$rt}}.Lookup({{$table}}[:], int64({{$v}})); {{$i}} >= 0 {
		return {{$table}}[{{$i}}].Name
	}
	return {{$rt}}.Unknown({{quote .Name}}, int64({{$v}}))
}
{{end}}

{{- define "ranged" -}}
{{- $rt := .N.Runtime -}}
{{- $table := .N.Helper .Name .Table -}}
{{- $v := .N.Local "v" -}}
{{- $i := .N.Local "i" -}}
{{template "table" .}}
// {{.Name}}TryFrom returns the variant whose range contains the given value.
func {{.Name}}TryFrom({{$v}} uint64) ({{.Name}}, error) {
	if {{$i}} := {{$rt}}.Lookup({{$table}}[:], {{$v}}); {{$i}} >= 0 {
		return {{.N.Helper .Name .Values}}[{{$i}}], nil
	}
	return 0, &{{$rt}}.RangeError[uint64]{Type: {{quote .Name}}, Value: {{$v}}}
}

func ({{$v}} {{.Name}}) String() string {
	if {{$i}} := {{$rt}}.Lookup({{$table}}[:], uint64({{$v}})); {{$i}} >= 0 {
		return {{$table}}[{{$i}}].Name
	}
	return {{$rt}}.Unknown({{quote .Name}}, uint64({{$v}}))
}
{{end}}

{{- define "var" -}}
var {{.Name}} = {{.Expr}}
{{end}}
`))
