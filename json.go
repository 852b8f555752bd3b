package shunt

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/itchyny/gojq"
)

// ValueFromJSON decodes JSON text into a Value tree: objects become
// Maps, arrays become Lists, and JSON scalars map onto the matching
// Value constructor. Object key order is preserved (decoding goes
// through json.Decoder's token stream rather than map[string]any, so
// Go's randomized map iteration never leaks into Map.keys).
func ValueFromJSON(text []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(text))
	dec.UseNumber()
	v, err := decodeJSONValue(dec)
	if err != nil {
		return None, newSyntaxError(ErrSyntaxError, 0, "invalid JSON: "+err.Error())
	}
	return v, nil
}

func decodeJSONValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return None, err
	}
	return decodeJSONToken(dec, tok)
}

func decodeJSONToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			m := NewMap()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return None, err
				}
				key, _ := keyTok.(string)
				v, err := decodeJSONValue(dec)
				if err != nil {
					return None, err
				}
				m.SetLocal(key, v)
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return None, err
			}
			return MapVal(m), nil
		case '[':
			var elems []Value
			for dec.More() {
				v, err := decodeJSONValue(dec)
				if err != nil {
					return None, err
				}
				elems = append(elems, v)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return None, err
			}
			return ListVal(NewList(elems...)), nil
		}
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return Int(i), nil
		}
		f, err := t.Float64()
		if err != nil {
			return None, err
		}
		return Number(f), nil
	case string:
		return Str(t), nil
	case bool:
		return Bool(t), nil
	case nil:
		return None, nil
	}
	return None, fmt.Errorf("unexpected JSON token %v", tok)
}

// ToJSON renders v as a JSON-compatible tree and marshals it.
// Functions and iterators have no JSON representation and fail with
// TypeError.
func (v Value) ToJSON() ([]byte, error) {
	native, err := toNative(v.Resolve())
	if err != nil {
		return nil, err
	}
	return json.Marshal(native)
}

func toNative(v Value) (any, error) {
	switch v.kind {
	case KNone:
		return nil, nil
	case KBool:
		return v.b, nil
	case KInt:
		return v.i, nil
	case KReal:
		return v.num, nil
	case KStr:
		return v.s, nil
	case KList:
		out := make([]any, v.list.Len())
		for i, e := range v.list.elems {
			n, err := toNative(e.Resolve())
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	case KMap:
		out := make(map[string]any, v.m.Len())
		for _, k := range v.m.keys {
			n, err := toNative(v.m.entries[k].Resolve())
			if err != nil {
				return nil, err
			}
			out[k] = n
		}
		return out, nil
	case KTuple, KStuple:
		out := make([]any, len(v.tup.elems))
		for i, e := range v.tup.elems {
			n, err := toNative(e.Resolve())
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	}
	return nil, &EvalError{Kind: ErrTypeError, Message: "cannot represent " + v.kind.String() + " as JSON"}
}

// ValueFromJSONQuery runs a jq-style query over JSON text and returns
// its first result as a Value, the sub-document-extraction bridge
// spec's JSON component (§4.9) exposes for hosts that embed expression
// evaluation inside a larger JSON-processing pipeline.
func ValueFromJSONQuery(jsonText []byte, query string) (Value, error) {
	q, err := gojq.Parse(query)
	if err != nil {
		return None, newSyntaxError(ErrSyntaxError, 0, "invalid jq query: "+err.Error())
	}
	var native any
	if err := json.Unmarshal(jsonText, &native); err != nil {
		return None, newSyntaxError(ErrSyntaxError, 0, "invalid JSON: "+err.Error())
	}
	iter := q.Run(native)
	result, ok := iter.Next()
	if !ok {
		return None, nil
	}
	if err, ok := result.(error); ok {
		return None, &EvalError{Kind: ErrTypeError, Message: "jq query failed: " + err.Error()}
	}
	return valueFromNative(result)
}

func valueFromNative(v any) (Value, error) {
	switch t := v.(type) {
	case nil:
		return None, nil
	case bool:
		return Bool(t), nil
	case int:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case float64:
		if float64(int64(t)) == t {
			return Int(int64(t)), nil
		}
		return Number(t), nil
	case string:
		return Str(t), nil
	case []any:
		elems := make([]Value, len(t))
		for i, e := range t {
			ev, err := valueFromNative(e)
			if err != nil {
				return None, err
			}
			elems[i] = ev
		}
		return ListVal(NewList(elems...)), nil
	case map[string]any:
		m := NewMap()
		for k, e := range t {
			ev, err := valueFromNative(e)
			if err != nil {
				return None, err
			}
			m.SetLocal(k, ev)
		}
		return MapVal(m), nil
	}
	return None, &EvalError{Kind: ErrTypeError, Message: fmt.Sprintf("cannot convert %T from jq result", v)}
}
