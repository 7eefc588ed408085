package bindly

import (
	"github.com/viant/tagly/format"
	"github.com/viant/tagly/format/text"
	"reflect"
	"strings"
)

const (
	//SetMarkerTag defines set marker tag
	SetMarkerTag = "setMarker"
	//PresenceMarkerTag defines presence marker tag
	PresenceMarkerTag = "presenceMarker"

	jsonTagName = "json"
)

//IsSetMarker returns true if struct field is a presence marker holder
func IsSetMarker(tag reflect.StructTag) bool {
	if value, ok := tag.Lookup(SetMarkerTag); ok {
		return value != "false"
	}
	if value, ok := tag.Lookup(PresenceMarkerTag); ok {
		return value != "false"
	}
	return false
}

//memberName returns wire name for a struct field, false if field is excluded
func memberName(field reflect.StructField, opts *options) (string, bool) {
	if name, ok, found := lookupTagName(field.Tag, opts.tagName); found {
		return name, ok
	}
	if opts.tagName != jsonTagName {
		if name, ok, found := lookupTagName(field.Tag, jsonTagName); found {
			return name, ok
		}
	}
	if tag, err := format.Parse(field.Tag); err == nil && tag != nil {
		if tag.Ignore {
			return "", false
		}
		name := field.Name
		if tag.Name != "" {
			name = tag.Name
		}
		if tag.CaseFormat != "" && tag.CaseFormat != "-" {
			return formatName(name, text.CaseFormat(tag.CaseFormat)), true
		}
		if tag.Name != "" {
			return name, true
		}
	}
	if opts.caseFormat != "" {
		return formatName(field.Name, opts.caseFormat), true
	}
	return field.Name, true
}

func lookupTagName(tag reflect.StructTag, tagName string) (name string, ok bool, found bool) {
	value, has := tag.Lookup(tagName)
	if !has {
		return "", false, false
	}
	if index := strings.Index(value, ","); index != -1 {
		value = value[:index]
	}
	switch value {
	case "-":
		return "", false, true
	case "":
		return "", false, false
	}
	return value, true, true
}

func formatName(name string, caseFormat text.CaseFormat) string {
	if name == "ID" {
		switch caseFormat {
		case text.CaseFormatLower, text.CaseFormatLowerCamel, text.CaseFormatLowerUnderscore:
			return "id"
		}
	}
	src := text.DetectCaseFormat(name)
	if !src.IsDefined() {
		src = text.CaseFormatUpperCamel
	}
	return src.Format(name, caseFormat)
}
