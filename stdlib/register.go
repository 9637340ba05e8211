package stdlib

import (
	"github.com/wfl-lang/wfl/runtime/interp"
	"github.com/wfl-lang/wfl/runtime/value"
)

// RegisterNatives installs every natively-implemented function from
// this package's representative subset into it, so WFL source can call
// them as ordinary bare-name actions. Kept as one entry point
// (cmd/wfl's only hook into this package) rather than one call per
// namespace, mirroring how the teacher wires its own middleware chain
// from a single composition root.
func RegisterNatives(it *interp.Interpreter) {
	var all []*value.NativeFunction
	all = append(all, coreNatives()...)
	all = append(all, textNatives()...)
	all = append(all, mathNatives()...)
	all = append(all, listNatives()...)
	all = append(all, mapNatives()...)
	all = append(all, timeNatives()...)
	all = append(all, randomNatives()...)
	all = append(all, cryptoNatives()...)
	all = append(all, patternNatives()...)

	for _, fn := range all {
		it.RegisterNative(fn)
	}
}
