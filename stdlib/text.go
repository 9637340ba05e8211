package stdlib

import (
	"regexp"
	"strings"

	werrors "github.com/wfl-lang/wfl/compiler/errors"
	"github.com/wfl-lang/wfl/runtime/value"
)

var slugNonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// textNatives generalizes native_legacy.go's String namespace (upcase,
// downcase, trim, contains, replace, slugify) from Conduit's
// Go-typed signatures to WFL Values, plus the additional text
// operations spec.md's stdlib overview lists (substring, index_of,
// repeat, joining, affix checks) that the teacher's registry didn't
// need. `length` lives in coreNatives; there is no splitting native.
func textNatives() []*value.NativeFunction {
	return []*value.NativeFunction{
		native("upcase", 1, func(args []value.Value) (value.Value, error) {
			s, err := asText(args[0])
			if err != nil {
				return nil, err
			}
			return value.Text(strings.ToUpper(s)), nil
		}),
		native("downcase", 1, func(args []value.Value) (value.Value, error) {
			s, err := asText(args[0])
			if err != nil {
				return nil, err
			}
			return value.Text(strings.ToLower(s)), nil
		}),
		native("trim", 1, func(args []value.Value) (value.Value, error) {
			s, err := asText(args[0])
			if err != nil {
				return nil, err
			}
			return value.Text(strings.TrimSpace(s)), nil
		}),
		native("contains", 2, func(args []value.Value) (value.Value, error) {
			s, err := asText(args[0])
			if err != nil {
				return nil, err
			}
			sub, err := asText(args[1])
			if err != nil {
				return nil, err
			}
			return value.Boolean(strings.Contains(s, sub)), nil
		}),
		native("starts_with", 2, func(args []value.Value) (value.Value, error) {
			s, err := asText(args[0])
			if err != nil {
				return nil, err
			}
			prefix, err := asText(args[1])
			if err != nil {
				return nil, err
			}
			return value.Boolean(strings.HasPrefix(s, prefix)), nil
		}),
		native("ends_with", 2, func(args []value.Value) (value.Value, error) {
			s, err := asText(args[0])
			if err != nil {
				return nil, err
			}
			suffix, err := asText(args[1])
			if err != nil {
				return nil, err
			}
			return value.Boolean(strings.HasSuffix(s, suffix)), nil
		}),
		native("replace", 3, func(args []value.Value) (value.Value, error) {
			s, err := asText(args[0])
			if err != nil {
				return nil, err
			}
			old, err := asText(args[1])
			if err != nil {
				return nil, err
			}
			replacement, err := asText(args[2])
			if err != nil {
				return nil, err
			}
			return value.Text(strings.ReplaceAll(s, old, replacement)), nil
		}),
		native("slugify", 1, func(args []value.Value) (value.Value, error) {
			s, err := asText(args[0])
			if err != nil {
				return nil, err
			}
			s = strings.ToLower(s)
			s = slugNonAlnum.ReplaceAllString(s, "-")
			return value.Text(strings.Trim(s, "-")), nil
		}),
		native("substring", 3, func(args []value.Value) (value.Value, error) {
			s, err := asText(args[0])
			if err != nil {
				return nil, err
			}
			start, err := asInt(args[1])
			if err != nil {
				return nil, err
			}
			end, err := asInt(args[2])
			if err != nil {
				return nil, err
			}
			runes := []rune(s)
			if start < 0 || end > len(runes) || start > end {
				return nil, werrors.NewCondition(werrors.CondIndexOutOfBounds,
					"substring bounds out of range", werrors.SourceLocation{})
			}
			return value.Text(string(runes[start:end])), nil
		}),
		native("index_of", 2, func(args []value.Value) (value.Value, error) {
			s, err := asText(args[0])
			if err != nil {
				return nil, err
			}
			sub, err := asText(args[1])
			if err != nil {
				return nil, err
			}
			return value.Number(float64(strings.Index(s, sub))), nil
		}),
		native("repeat", 2, func(args []value.Value) (value.Value, error) {
			s, err := asText(args[0])
			if err != nil {
				return nil, err
			}
			n, err := asInt(args[1])
			if err != nil {
				return nil, err
			}
			if n < 0 {
				return nil, werrors.NewCondition(werrors.CondInvalidRange,
					"repeat count must be non-negative", werrors.SourceLocation{})
			}
			return value.Text(strings.Repeat(s, n)), nil
		}),
		native("join_words", 2, func(args []value.Value) (value.Value, error) {
			l, err := asList(args[0])
			if err != nil {
				return nil, err
			}
			sep, err := asText(args[1])
			if err != nil {
				return nil, err
			}
			parts := make([]string, l.Len())
			for i := 0; i < l.Len(); i++ {
				v, _ := l.Get(i)
				parts[i] = v.ToText()
			}
			return value.Text(strings.Join(parts, sep)), nil
		}),
	}
}
