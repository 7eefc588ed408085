package bindly

import (
	"reflect"
	"unicode"

	"github.com/viant/tagly/format/text"
)

//GenMarkerFields generates presence marker holder fields, one bool per registry field
func GenMarkerFields(t reflect.Type) ([]reflect.StructField, error) {
	registry, err := RegistryOf(t)
	if err != nil {
		return nil, err
	}
	boolType := reflect.TypeOf(true)
	result := make([]reflect.StructField, 0, registry.Len())
	for _, field := range registry.Fields() {
		name := field.Member
		if name == "" {
			name = formatName(field.Name, text.CaseFormatUpperCamel)
		}
		if !isExportedIdentifier(name) {
			continue
		}
		result = append(result, reflect.StructField{Name: name, Type: boolType})
	}
	return result, nil
}

func isExportedIdentifier(name string) bool {
	for i, r := range name {
		if i == 0 && !unicode.IsUpper(r) {
			return false
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return false
		}
	}
	return name != ""
}
