package stdlib

import (
	"time"

	werrors "github.com/wfl-lang/wfl/compiler/errors"
	"github.com/wfl-lang/wfl/runtime/value"
)

// timeNatives generalizes native_legacy.go's Time namespace
// (TimeNow/TimeFormat/TimeParse/TimeAddDays, each typed directly in
// Go's time.Time) to WFL's DateTime value, keeping the same four
// operations plus add_hours/diff_seconds that spec.md's duration
// arithmetic implies once Duration is a first-class value kind.
func timeNatives() []*value.NativeFunction {
	return []*value.NativeFunction{
		native("now", 0, func(args []value.Value) (value.Value, error) {
			return value.DateTime{T: time.Now().UTC()}, nil
		}),
		native("format_time", 2, func(args []value.Value) (value.Value, error) {
			dt, err := asDateTime(args[0])
			if err != nil {
				return nil, err
			}
			layout, err := asText(args[1])
			if err != nil {
				return nil, err
			}
			return value.Text(dt.T.Format(layout)), nil
		}),
		native("parse_time", 2, func(args []value.Value) (value.Value, error) {
			s, err := asText(args[0])
			if err != nil {
				return nil, err
			}
			layout, err := asText(args[1])
			if err != nil {
				return nil, err
			}
			t, perr := time.Parse(layout, s)
			if perr != nil {
				return nil, werrors.New(werrors.RuntimeResource, perr.Error(), werrors.SourceLocation{})
			}
			return value.DateTime{T: t}, nil
		}),
		native("add_days", 2, func(args []value.Value) (value.Value, error) {
			dt, err := asDateTime(args[0])
			if err != nil {
				return nil, err
			}
			days, err := asInt(args[1])
			if err != nil {
				return nil, err
			}
			return value.DateTime{T: dt.T.AddDate(0, 0, days)}, nil
		}),
		native("add_hours", 2, func(args []value.Value) (value.Value, error) {
			dt, err := asDateTime(args[0])
			if err != nil {
				return nil, err
			}
			hours, err := asNumber(args[1])
			if err != nil {
				return nil, err
			}
			return value.DateTime{T: dt.T.Add(time.Duration(hours * float64(time.Hour)))}, nil
		}),
		native("diff_seconds", 2, func(args []value.Value) (value.Value, error) {
			a, err := asDateTime(args[0])
			if err != nil {
				return nil, err
			}
			b, err := asDateTime(args[1])
			if err != nil {
				return nil, err
			}
			return value.Number(a.T.Sub(b.T).Seconds()), nil
		}),
	}
}
