package inferskema

import (
	"fmt"
	"math"
	"math/big"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DecimalRule names a source representation that is promoted to Decimal128
// when enabled.
type DecimalRule int

const (
	IntegerToDecimal DecimalRule = iota
	DecimalToDecimal
	BigintToDecimal
	DecimalStringToDecimal
	IntegerStringToDecimal
	BigintStringToDecimal
	// Decimal128StringToDecimal is accepted but never matches: strings beyond
	// both float64 and int64 range are not promoted yet.
	Decimal128StringToDecimal
)

var decimalRuleNames = [...]string{
	IntegerToDecimal:          "IntegerToDecimal",
	DecimalToDecimal:          "DecimalToDecimal",
	BigintToDecimal:           "BigintToDecimal",
	DecimalStringToDecimal:    "DecimalStringToDecimal",
	IntegerStringToDecimal:    "IntegerStringToDecimal",
	BigintStringToDecimal:     "BigintStringToDecimal",
	Decimal128StringToDecimal: "Decimal128StringToDecimal",
}

// long names used by the mongoose tooling this package mirrors
var decimalRuleAliases = map[string]DecimalRule{
	"convertintegertodecimal128":                    IntegerToDecimal,
	"convertdecimaltodecimal128":                    DecimalToDecimal,
	"convertbiginttodecimal128":                     BigintToDecimal,
	"convertdecimalparseablestringstodecimal128":    DecimalStringToDecimal,
	"convertintegerparseablestringstodecimal128":    IntegerStringToDecimal,
	"convertbigintparseablestringstodecimal128":     BigintStringToDecimal,
	"convertdecimal128parseablestringstodecimal128": Decimal128StringToDecimal,
}

func (r DecimalRule) String() string {
	if r < 0 || int(r) >= len(decimalRuleNames) {
		return fmt.Sprintf("DecimalRule(%d)", int(r))
	}
	return decimalRuleNames[r]
}

// DecimalRules lists every rule in declaration order.
func DecimalRules() []DecimalRule {
	out := make([]DecimalRule, len(decimalRuleNames))
	for i := range decimalRuleNames {
		out[i] = DecimalRule(i)
	}
	return out
}

// ParseDecimalRule resolves a rule tag case-insensitively.
func ParseDecimalRule(s string) (DecimalRule, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, name := range decimalRuleNames {
		if strings.ToLower(name) == key {
			return DecimalRule(i), nil
		}
	}
	if r, ok := decimalRuleAliases[key]; ok {
		return r, nil
	}
	return 0, fmt.Errorf("inferskema: unknown decimal rule %q", s)
}

type ruleMask uint8

func maskOf(rules []DecimalRule) ruleMask {
	var m ruleMask
	for _, r := range rules {
		if r >= 0 && int(r) < len(decimalRuleNames) {
			m |= 1 << uint(r)
		}
	}
	return m
}

func (m ruleMask) has(r DecimalRule) bool { return m&(1<<uint(r)) != 0 }

const (
	maxSafeInteger = 1<<53 - 1
)

var (
	digitsPattern  = regexp.MustCompile(`^\d+$`)
	decimalPattern = regexp.MustCompile(`^\d*\.\d*$`)
	maxInt64       = big.NewInt(math.MaxInt64)
)

// IsIntegerString reports whether s is all digits and within the exact
// integer range of a float64.
func IsIntegerString(s string) bool {
	if !digitsPattern.MatchString(s) {
		return false
	}
	f, err := strconv.ParseFloat(s, 64)
	return err == nil && f <= maxSafeInteger
}

// IsDecimalString reports whether s has the shape digits '.' digits and a
// finite float64 magnitude.
func IsDecimalString(s string) bool {
	if !decimalPattern.MatchString(s) {
		return false
	}
	f, err := strconv.ParseFloat(s, 64)
	return err == nil && math.Abs(f) <= math.MaxFloat64
}

// IsBigIntString reports whether s is all digits and at most math.MaxInt64.
func IsBigIntString(s string) bool {
	if !digitsPattern.MatchString(s) {
		return false
	}
	n, ok := new(big.Int).SetString(s, 10)
	return ok && n.Cmp(maxInt64) <= 0
}

// IsInteger reports whether v is a native number whose text form is an
// integer string.
func IsInteger(v any) bool {
	s, ok := numberText(v)
	return ok && IsIntegerString(s)
}

// IsDecimal reports whether v is a native number whose text form is a
// decimal string. Integral values never match.
func IsDecimal(v any) bool {
	s, ok := numberText(v)
	return ok && IsDecimalString(s)
}

// IsBigInt reports whether v is a non-negative *big.Int within int64 range.
func IsBigInt(v any) bool {
	n, ok := v.(*big.Int)
	return ok && n != nil && n.Sign() >= 0 && n.Cmp(maxInt64) <= 0
}

// MatchDecimalRule returns the first enabled rule v matches. Evaluation order
// is integer, integer string, decimal, decimal string, bigint, bigint string.
func MatchDecimalRule(v any, rules []DecimalRule) (DecimalRule, bool) {
	return matchDecimalRule(v, maskOf(rules))
}

func matchDecimalRule(v any, m ruleMask) (DecimalRule, bool) {
	if m == 0 {
		return 0, false
	}
	s, isString := textOf(v)
	switch {
	case m.has(IntegerToDecimal) && IsInteger(v):
		return IntegerToDecimal, true
	case m.has(IntegerStringToDecimal) && isString && IsIntegerString(s):
		return IntegerStringToDecimal, true
	case m.has(DecimalToDecimal) && IsDecimal(v):
		return DecimalToDecimal, true
	case m.has(DecimalStringToDecimal) && isString && IsDecimalString(s):
		return DecimalStringToDecimal, true
	case m.has(BigintToDecimal) && IsBigInt(v):
		return BigintToDecimal, true
	case m.has(BigintStringToDecimal) && isString && IsBigIntString(s):
		return BigintStringToDecimal, true
	}
	return 0, false
}

func textOf(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case json.Number:
		return "", false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.String && !isDriverValue(rv.Type()) {
		return rv.String(), true
	}
	return "", false
}

// numberText renders a native number the way an ECMAScript engine prints it,
// so exponent forms never look like integers or plain decimals.
func numberText(v any) (string, bool) {
	switch x := v.(type) {
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return strconv.FormatInt(i, 10), true
		}
		f, err := x.Float64()
		if err != nil {
			return "", false
		}
		return formatFloat(f), true
	case *big.Int:
		return "", false
	}
	rv := reflect.ValueOf(v)
	if isDriverValue(rv.Type()) {
		return "", false
	}
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10), true
	case reflect.Float32, reflect.Float64:
		return formatFloat(rv.Float()), true
	}
	return "", false
}

var primitivePkg = reflect.TypeOf(primitive.DateTime(0)).PkgPath()

// isDriverValue reports BSON value types such as primitive.DateTime that have
// a numeric or string representation but are not plain numbers or strings.
func isDriverValue(t reflect.Type) bool {
	return t.PkgPath() == primitivePkg
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	if a := math.Abs(f); a >= 1e21 || a < 1e-6 {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
