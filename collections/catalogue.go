package collections

// builtins is the fixed operation table. Phase, in-place and
// Sequence-only flags are read by Call; step bodies never check them.
var builtins map[string]Operation

func init() {
	positive := func(n int) bool { return n > 0 }
	builtins = make(map[string]Operation)
	def := func(name string, phase Phase, inPlace, seqOnly bool, prepare prepareFunc) {
		builtins[name] = Operation{Name: name, Phase: phase, InPlace: inPlace, SequenceOnly: seqOnly, prepare: prepare}
	}
	filter := func(name string, prepare prepareFunc) { def(name, PhaseFilter, false, false, prepare) }
	action := func(name string, seqOnly bool, prepare prepareFunc) { def(name, PhaseAction, false, seqOnly, prepare) }
	sorter := func(name string, prepare prepareFunc) { def(name, PhaseAction, true, true, prepare) }
	update := func(name string, prepare prepareFunc) { def(name, PhaseUpdate, true, false, prepare) }

	filter("filter", prepareFilter(false))
	filter("reject", prepareFilter(true))
	filter("where", prepareWhere(false))
	filter("whereNot", prepareWhere(true))
	filter("whereNil", prepareResolved(true, func(v any, found bool) bool { return !found || isNil(v) }))
	filter("whereNotNil", prepareResolved(true, func(v any, found bool) bool { return found && !isNil(v) }))
	filter("whereHas", prepareResolved(false, func(_ any, found bool) bool { return found }))
	filter("whereMissing", prepareResolved(false, func(_ any, found bool) bool { return !found }))
	filter("whereIn", prepareWhereIn(false))
	filter("whereNotIn", prepareWhereIn(true))
	filter("whereBetween", prepareWhereBetween)
	filter("whereExpr", prepareWhereExpr)
	filter("unique", prepareUnique)
	filter("only", prepareKeys(false))
	filter("except", prepareKeys(true))

	action("map", false, prepareMap)
	action("mapWithKeys", false, prepareMapWithKeys)
	action("pluck", false, preparePluck)
	action("keys", false, noArgs(keysBody))
	action("values", false, noArgs(valuesBody))
	action("flatten", true, prepareFlatten)
	action("chunk", true, intOp("chunk size", positive, chunkBody))
	action("slice", true, prepareSlice)
	action("take", true, intOp("count", nil, takeBody))
	action("skip", true, intOp("count", nil, skipBody))
	action("reverse", true, noArgs(reverseBody))
	action("push", true, prepareAdd(false))
	action("prepend", true, prepareAdd(true))
	action("merge", false, prepareMerge)
	action("groupBy", false, prepareGroupBy)
	action("keyBy", false, prepareKeyBy)
	action("countBy", false, prepareCount(1))
	action("duplicates", false, prepareCount(2))
	action("dot", false, prepareDot)
	action("undot", false, prepareUndot)

	sorter("sort", noArgs(sortBody(false)))
	sorter("sortDesc", noArgs(sortBody(true)))
	sorter("sortBy", prepareSortBy(false))
	sorter("sortByDesc", prepareSortBy(true))
	sorter("sortWith", prepareSortWith)
	sorter("sortExpr", prepareSortExpr)
	sorter("shuffle", noArgs(shuffleBody))

	update("set", prepareSet)
	update("setPath", prepareSetPath)
	update("forget", prepareForget)
	update("transform", prepareTransform)
}

// IsBuiltin reports whether name is a built-in operation.
func IsBuiltin(name string) bool {
	_, ok := builtins[name]
	return ok
}
