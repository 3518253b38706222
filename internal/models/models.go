package models

// JSONValue is a generic type to represent any JSON value.
// It holds a string, float64, bool, nil, JSONObject or JSONArray.
type JSONValue interface{}

// JSONObject represents a JSON object, which is a map of strings to JSONValues.
type JSONObject map[string]JSONValue

// JSONArray represents a JSON array, which is a slice of JSONValues.
type JSONArray []JSONValue

// Kind identifies which alternative of JSONValue a value holds
type Kind int

const (
	KindInvalid Kind = iota
	KindString
	KindBool
	KindNumber
	KindNull
	KindObject
	KindArray
)

// String returns the lowercase JSON name of the kind
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindNull:
		return "null"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return "invalid"
	}
}

// KindOf reports the kind of v. Values outside the JSON model are KindInvalid.
func KindOf(v JSONValue) Kind {
	switch v.(type) {
	case nil:
		return KindNull
	case string:
		return KindString
	case bool:
		return KindBool
	case float64:
		return KindNumber
	case JSONObject:
		return KindObject
	case JSONArray:
		return KindArray
	default:
		return KindInvalid
	}
}

// Match is a successful grammar match: the value and the input it did not
// consume. Remaining is always a byte suffix of the matched text.
type Match struct {
	Value     JSONValue
	Remaining string
}

// Document is the parsed form of a whole input handed to the rest of the program.
type Document struct {
	Root     JSONValue
	RootKind Kind
	// Remaining is the unconsumed suffix of the input. It is always empty
	// (or whitespace) when the document was parsed in strict mode.
	Remaining string
	// Consumed is the number of bytes of input that made up the value,
	// counting the leading whitespace that was skipped
	Consumed int
}
