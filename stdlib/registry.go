// Package stdlib is WFL's native function registry: a name->signature
// catalogue consulted by the type checker and documentation tooling,
// independent of which functions actually have a registered Go body.
package stdlib

import "sort"

// FunctionDef represents a function signature in the standard library.
type FunctionDef struct {
	Name        string // Function name (without namespace)
	Signature   string // Full signature: Name(params) -> returnType
	Description string // One-line description of what the function does
}

// StdlibRegistry catalogues WFL's native functions by namespace,
// grounded on spec.md §4.7's category list (core, math, text, list,
// filesystem, time, random, crypto, pattern, web, subprocess) and
// generalizing the teacher's own registry.go shape (a
// namespace->[]FunctionDef map plus GetNamespaces/GetFunctions/
// TotalFunctionCount accessors). Functions actually registered with a
// Go body by RegisterNatives are the representative subset the
// interpreter's test suite exercises; the rest are catalogued here for
// the type checker and documentation with signatures only, same as the
// teacher's own registry does for functions outside its focus.
var StdlibRegistry = map[string][]FunctionDef{
	"Core": {
		{Name: "type_of", Signature: "type_of(v: any!) -> string!", Description: "Returns the name of v's runtime kind"},
		{Name: "to_text", Signature: "to_text(v: any!) -> string!", Description: "Renders v as text the same way display does"},
		{Name: "is_nothing", Signature: "is_nothing(v: any!) -> bool!", Description: "Reports whether v is nothing"},
		{Name: "length", Signature: "length(v: text! | list! | map!) -> int!", Description: "Returns the length of text, a list, or a map"},
		{Name: "clone", Signature: "clone(v: list! | map!) -> list! | map!", Description: "Returns a shallow copy of a list or map"},
		{Name: "equals", Signature: "equals(a: any!, b: any!) -> bool!", Description: "Deep-compares two values for equality"},
	},
	"Text": {
		{Name: "upcase", Signature: "upcase(s: text!) -> text!", Description: "Converts text to uppercase"},
		{Name: "downcase", Signature: "downcase(s: text!) -> text!", Description: "Converts text to lowercase"},
		{Name: "trim", Signature: "trim(s: text!) -> text!", Description: "Removes leading and trailing whitespace"},
		{Name: "contains", Signature: "contains(s: text!, substr: text!) -> bool!", Description: "Checks whether s contains substr"},
		{Name: "starts_with", Signature: "starts_with(s: text!, prefix: text!) -> bool!", Description: "Checks whether s begins with prefix"},
		{Name: "ends_with", Signature: "ends_with(s: text!, suffix: text!) -> bool!", Description: "Checks whether s ends with suffix"},
		{Name: "replace", Signature: "replace(s: text!, old: text!, new: text!) -> text!", Description: "Replaces every occurrence of old with new"},
		{Name: "slugify", Signature: "slugify(s: text!) -> text!", Description: "Converts text to a lowercase, hyphenated slug"},
		{Name: "substring", Signature: "substring(s: text!, start: int!, end: int!) -> text!", Description: "Returns the substring between start and end"},
		{Name: "index_of", Signature: "index_of(s: text!, substr: text!) -> int!", Description: "Returns the byte offset of substr's first occurrence, or -1"},
		{Name: "repeat", Signature: "repeat(s: text!, n: int!) -> text!", Description: "Repeats s n times"},
		{Name: "join_words", Signature: "join_words(parts: list!, sep: text!) -> text!", Description: "Joins a list's elements into one text with sep between them"},
		{Name: "pad_left", Signature: "pad_left(s: text!, width: int!, pad: text!) -> text!", Description: "Left-pads s with pad until it reaches width"},
		{Name: "pad_right", Signature: "pad_right(s: text!, width: int!, pad: text!) -> text!", Description: "Right-pads s with pad until it reaches width"},
		{Name: "reverse_text", Signature: "reverse_text(s: text!) -> text!", Description: "Reverses the characters of s"},
		{Name: "capitalize", Signature: "capitalize(s: text!) -> text!", Description: "Uppercases the first letter of s"},
		{Name: "count_occurrences", Signature: "count_occurrences(s: text!, substr: text!) -> int!", Description: "Counts non-overlapping occurrences of substr in s"},
		{Name: "is_blank", Signature: "is_blank(s: text!) -> bool!", Description: "Reports whether s is empty or all whitespace"},
		{Name: "lines_of", Signature: "lines_of(s: text!) -> list!", Description: "Splits s into a list of lines"},
		{Name: "words_of", Signature: "words_of(s: text!) -> list!", Description: "Splits s into a list of whitespace-separated words"},
	},
	"Math": {
		{Name: "abs", Signature: "abs(n: number!) -> number!", Description: "Returns the absolute value of n"},
		{Name: "round", Signature: "round(n: number!) -> number!", Description: "Rounds n to the nearest integer"},
		{Name: "floor", Signature: "floor(n: number!) -> number!", Description: "Rounds n down to the nearest integer"},
		{Name: "ceiling", Signature: "ceiling(n: number!) -> number!", Description: "Rounds n up to the nearest integer"},
		{Name: "sqrt", Signature: "sqrt(n: number!) -> number!", Description: "Returns the square root of n"},
		{Name: "power", Signature: "power(base: number!, exp: number!) -> number!", Description: "Raises base to exp"},
		{Name: "modulo", Signature: "modulo(a: number!, b: number!) -> number!", Description: "Returns the remainder of a divided by b"},
		{Name: "min_of", Signature: "min_of(a: number!, b: number!) -> number!", Description: "Returns the smaller of a and b"},
		{Name: "max_of", Signature: "max_of(a: number!, b: number!) -> number!", Description: "Returns the larger of a and b"},
		{Name: "log_of", Signature: "log_of(n: number!) -> number!", Description: "Returns the natural logarithm of n"},
		{Name: "sin_of", Signature: "sin_of(n: number!) -> number!", Description: "Returns the sine of n radians"},
		{Name: "cos_of", Signature: "cos_of(n: number!) -> number!", Description: "Returns the cosine of n radians"},
		{Name: "is_even", Signature: "is_even(n: number!) -> bool!", Description: "Reports whether n is an even integer"},
		{Name: "is_odd", Signature: "is_odd(n: number!) -> bool!", Description: "Reports whether n is an odd integer"},
	},
	"List": {
		{Name: "list_contains", Signature: "list_contains(l: list!, value: any!) -> bool!", Description: "Checks if a list contains a value"},
		{Name: "push", Signature: "push(l: list!, value: any!) -> list!", Description: "Appends value to l, returning l"},
		{Name: "pop", Signature: "pop(l: list!) -> any!", Description: "Removes and returns the last element of l"},
		{Name: "first", Signature: "first(l: list!) -> any!", Description: "Returns the first element of l"},
		{Name: "last", Signature: "last(l: list!) -> any!", Description: "Returns the last element of l"},
		{Name: "reverse", Signature: "reverse(l: list!) -> list!", Description: "Returns a new list with l's elements reversed"},
		{Name: "sort_numbers", Signature: "sort_numbers(l: list!) -> list!", Description: "Returns a new list of l's numbers sorted ascending"},
		{Name: "sum", Signature: "sum(l: list!) -> number!", Description: "Returns the sum of l's numbers"},
		{Name: "average", Signature: "average(l: list!) -> number!", Description: "Returns the arithmetic mean of l's numbers"},
		{Name: "unique_of", Signature: "unique_of(l: list!) -> list!", Description: "Returns a new list with duplicate elements removed"},
		{Name: "flatten_list", Signature: "flatten_list(l: list!) -> list!", Description: "Flattens one level of nested lists"},
		{Name: "slice_of", Signature: "slice_of(l: list!, start: int!, end: int!) -> list!", Description: "Returns the sublist between start and end"},
	},
	"Map": {
		{Name: "has_key", Signature: "has_key(m: map!, key: text!) -> bool!", Description: "Checks if a map contains a key"},
		{Name: "keys_of", Signature: "keys_of(m: map!) -> list!", Description: "Returns a map's keys in insertion order"},
		{Name: "values_of", Signature: "values_of(m: map!) -> list!", Description: "Returns a map's values in insertion order"},
		{Name: "delete_key", Signature: "delete_key(m: map!, key: text!) -> bool!", Description: "Removes key from m, reporting whether it was present"},
		{Name: "merge_into", Signature: "merge_into(into: map!, from: map!) -> map!", Description: "Copies from's entries into into, returning into"},
	},
	"Time": {
		{Name: "now", Signature: "now() -> datetime!", Description: "Returns the current UTC timestamp"},
		{Name: "format_time", Signature: "format_time(t: datetime!, layout: text!) -> text!", Description: "Formats a timestamp using a Go-style layout"},
		{Name: "parse_time", Signature: "parse_time(s: text!, layout: text!) -> datetime!", Description: "Parses text into a timestamp using a Go-style layout"},
		{Name: "add_days", Signature: "add_days(t: datetime!, days: int!) -> datetime!", Description: "Adds days to a timestamp"},
		{Name: "add_hours", Signature: "add_hours(t: datetime!, hours: number!) -> datetime!", Description: "Adds hours to a timestamp"},
		{Name: "diff_seconds", Signature: "diff_seconds(a: datetime!, b: datetime!) -> number!", Description: "Returns a minus b in seconds"},
		{Name: "day_of_week", Signature: "day_of_week(t: datetime!) -> text!", Description: "Returns the weekday name of t"},
		{Name: "is_before", Signature: "is_before(a: datetime!, b: datetime!) -> bool!", Description: "Reports whether a precedes b"},
		{Name: "is_after", Signature: "is_after(a: datetime!, b: datetime!) -> bool!", Description: "Reports whether a follows b"},
	},
	"Random": {
		{Name: "random_number", Signature: "random_number(lo: int!, hi: int!) -> int!", Description: "Returns a random integer in [lo, hi]"},
		{Name: "random_float", Signature: "random_float() -> number!", Description: "Returns a random number in [0, 1)"},
		{Name: "random_choice", Signature: "random_choice(l: list!) -> any!", Description: "Returns a random element of l"},
		{Name: "random_bool", Signature: "random_bool() -> bool!", Description: "Returns a random boolean"},
		{Name: "uuid_generate", Signature: "uuid_generate() -> text!", Description: "Generates a new random UUID (v4)"},
		{Name: "shuffle_list", Signature: "shuffle_list(l: list!) -> list!", Description: "Returns a new list with l's elements in random order"},
	},
	"Crypto": {
		{Name: "wflhash256", Signature: "wflhash256(s: text!) -> text!", Description: "Returns the lowercase-hex WFLHASH256 digest of s"},
		{Name: "wflhash512", Signature: "wflhash512(s: text!) -> text!", Description: "Returns the lowercase-hex WFLHASH512 digest of s"},
		{Name: "wflhash256_with_salt", Signature: "wflhash256_with_salt(s: text!, salt: text!) -> text!", Description: "Returns the salted WFLHASH256 digest of s"},
		{Name: "wflmac256", Signature: "wflmac256(s: text!, key: text!) -> text!", Description: "Returns the HKDF-SHA256-keyed WFLMAC of s"},
	},
	"Pattern": {
		{Name: "pattern_matches", Signature: "pattern_matches(p: pattern!, text: text!) -> bool!", Description: "Reports whether p matches anywhere in text"},
		{Name: "find", Signature: "find p in text -> map?", Description: "Expression form; see compiler/parser for grammar"},
		{Name: "find_all", Signature: "find all p in text -> list!", Description: "Expression form; see compiler/parser for grammar"},
		{Name: "replace", Signature: "replace p with replacement in text -> text!", Description: "Expression form; see compiler/parser for grammar"},
		{Name: "split", Signature: "split text on p -> list!", Description: "Expression form; see compiler/parser for grammar"},
	},
	"Filesystem": {
		{Name: "file_exists", Signature: "file_exists(path: text!) -> bool!", Description: "Reports whether a file exists at path"},
		{Name: "file_size", Signature: "file_size(path: text!) -> int!", Description: "Returns the size of the file at path in bytes"},
		{Name: "delete_file", Signature: "delete_file(path: text!) -> bool!", Description: "Deletes the file at path"},
		{Name: "list_directory", Signature: "list_directory(path: text!) -> list!", Description: "Lists entry names under path"},
	},
	"Web": {
		{Name: "url_encode", Signature: "url_encode(s: text!) -> text!", Description: "Percent-encodes s for use in a URL"},
		{Name: "url_decode", Signature: "url_decode(s: text!) -> text!", Description: "Decodes a percent-encoded URL component"},
		{Name: "parse_json", Signature: "parse_json(s: text!) -> any?", Description: "Parses JSON text into a WFL value, or nothing on failure"},
		{Name: "to_json", Signature: "to_json(v: any!) -> text!", Description: "Renders a WFL value as JSON text"},
	},
	"Subprocess": {
		{Name: "command_exists", Signature: "command_exists(name: text!) -> bool!", Description: "Reports whether name resolves on the system PATH"},
		{Name: "environment_variable", Signature: "environment_variable(name: text!) -> text?", Description: "Returns an environment variable's value, or nothing"},
	},
}

// GetNamespaces returns a sorted list of all available namespaces.
func GetNamespaces() []string {
	namespaces := make([]string, 0, len(StdlibRegistry))
	for namespace := range StdlibRegistry {
		namespaces = append(namespaces, namespace)
	}
	sort.Strings(namespaces)
	return namespaces
}

// GetFunctions returns all functions for a given namespace, or nil if
// the namespace doesn't exist.
func GetFunctions(namespace string) []FunctionDef {
	return StdlibRegistry[namespace]
}

// GetAllFunctions returns all functions across all namespaces.
func GetAllFunctions() map[string][]FunctionDef {
	return StdlibRegistry
}

// TotalFunctionCount returns the total number of functions across all
// namespaces.
func TotalFunctionCount() int {
	total := 0
	for _, funcs := range StdlibRegistry {
		total += len(funcs)
	}
	return total
}
