package conv

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/viant/bindly/visitor"
)

// Number represents decimal text of a number whose target type is not known yet
type Number string

// Converter converts decoded scalars into visitor leaf values
type Converter struct {
	policy visitor.MismatchPolicy
}

// NewConverter creates a converter for supplied mismatch policy
func NewConverter(policy visitor.MismatchPolicy) *Converter {
	return &Converter{policy: policy}
}

func (c *Converter) coerce() bool {
	return c.policy == visitor.CoerceMismatch
}

func mismatch(src interface{}, target string) error {
	return fmt.Errorf("%w: cannot convert %T(%v) to %s", visitor.ErrStructuralMismatch, src, src, target)
}

// Kind returns visitor kind of a decoded scalar, KindError for unsupported values
func Kind(src interface{}) visitor.Kind {
	if src == nil {
		return visitor.KindNull
	}
	if _, ok := src.(Number); ok {
		return visitor.KindNumber
	}
	switch reflect.ValueOf(src).Kind() {
	case reflect.Bool:
		return visitor.KindBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return visitor.KindNumber
	case reflect.String:
		return visitor.KindString
	}
	return visitor.KindError
}

// Int64 converts src into int64
func (c *Converter) Int64(src interface{}) (int64, error) {
	if number, ok := src.(Number); ok {
		return c.parseInt(string(number), src)
	}
	srcValue := reflect.ValueOf(src)
	switch srcValue.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return srcValue.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if v := srcValue.Uint(); v <= math.MaxInt64 {
			return int64(v), nil
		}
	case reflect.Float32, reflect.Float64:
		return c.floatToInt(srcValue.Float(), src)
	case reflect.Bool:
		if c.coerce() {
			if srcValue.Bool() {
				return 1, nil
			}
			return 0, nil
		}
	case reflect.String:
		if c.coerce() {
			return c.parseInt(strings.TrimSpace(srcValue.String()), src)
		}
	}
	return 0, mismatch(src, "int64")
}

func (c *Converter) parseInt(text string, src interface{}) (int64, error) {
	if result, err := strconv.ParseInt(text, 10, 64); err == nil {
		return result, nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, mismatch(src, "int64")
	}
	return c.floatToInt(f, src)
}

func (c *Converter) floatToInt(f float64, src interface{}) (int64, error) {
	if f < math.MinInt64 || f >= math.MaxInt64 || math.IsNaN(f) {
		return 0, mismatch(src, "int64")
	}
	if f != math.Trunc(f) && !c.coerce() {
		return 0, mismatch(src, "int64")
	}
	return int64(f), nil
}

// Uint64 converts src into uint64, negative values are always rejected
func (c *Converter) Uint64(src interface{}) (uint64, error) {
	if number, ok := src.(Number); ok {
		return c.parseUint(string(number), src)
	}
	srcValue := reflect.ValueOf(src)
	switch srcValue.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if v := srcValue.Int(); v >= 0 {
			return uint64(v), nil
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return srcValue.Uint(), nil
	case reflect.Float32, reflect.Float64:
		return c.floatToUint(srcValue.Float(), src)
	case reflect.Bool:
		if c.coerce() {
			if srcValue.Bool() {
				return 1, nil
			}
			return 0, nil
		}
	case reflect.String:
		if c.coerce() {
			return c.parseUint(strings.TrimSpace(srcValue.String()), src)
		}
	}
	return 0, mismatch(src, "uint64")
}

func (c *Converter) parseUint(text string, src interface{}) (uint64, error) {
	if result, err := strconv.ParseUint(text, 10, 64); err == nil {
		return result, nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, mismatch(src, "uint64")
	}
	return c.floatToUint(f, src)
}

func (c *Converter) floatToUint(f float64, src interface{}) (uint64, error) {
	if f < 0 || f >= math.MaxUint64 || math.IsNaN(f) {
		return 0, mismatch(src, "uint64")
	}
	if f != math.Trunc(f) && !c.coerce() {
		return 0, mismatch(src, "uint64")
	}
	return uint64(f), nil
}

// Float64 converts src into float64
func (c *Converter) Float64(src interface{}) (float64, error) {
	if number, ok := src.(Number); ok {
		if result, err := strconv.ParseFloat(string(number), 64); err == nil {
			return result, nil
		}
		return 0, mismatch(src, "float64")
	}
	srcValue := reflect.ValueOf(src)
	switch srcValue.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(srcValue.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(srcValue.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return srcValue.Float(), nil
	case reflect.Bool:
		if c.coerce() {
			if srcValue.Bool() {
				return 1, nil
			}
			return 0, nil
		}
	case reflect.String:
		if c.coerce() {
			if result, err := strconv.ParseFloat(strings.TrimSpace(srcValue.String()), 64); err == nil {
				return result, nil
			}
		}
	}
	return 0, mismatch(src, "float64")
}

// Bool converts src into bool
func (c *Converter) Bool(src interface{}) (bool, error) {
	srcValue := reflect.ValueOf(src)
	if srcValue.Kind() == reflect.Bool {
		return srcValue.Bool(), nil
	}
	if !c.coerce() {
		return false, mismatch(src, "bool")
	}
	if _, ok := src.(Number); !ok && srcValue.Kind() == reflect.String {
		if result, err := strconv.ParseBool(srcValue.String()); err == nil {
			return result, nil
		}
	}
	if Kind(src) != visitor.KindNumber && Kind(src) != visitor.KindString {
		return false, mismatch(src, "bool")
	}
	f, err := c.Float64(src)
	if err != nil {
		return false, mismatch(src, "bool")
	}
	return f != 0, nil
}

// String converts src into string
func (c *Converter) String(src interface{}) (string, error) {
	if number, ok := src.(Number); ok {
		if c.coerce() {
			return string(number), nil
		}
		return "", mismatch(src, "string")
	}
	srcValue := reflect.ValueOf(src)
	if srcValue.Kind() == reflect.String {
		return srcValue.String(), nil
	}
	if !c.coerce() {
		return "", mismatch(src, "string")
	}
	switch srcValue.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(srcValue.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(srcValue.Uint(), 10), nil
	case reflect.Float32:
		return strconv.FormatFloat(srcValue.Float(), 'f', -1, 32), nil
	case reflect.Float64:
		return strconv.FormatFloat(srcValue.Float(), 'f', -1, 64), nil
	case reflect.Bool:
		return strconv.FormatBool(srcValue.Bool()), nil
	}
	return "", mismatch(src, "string")
}
