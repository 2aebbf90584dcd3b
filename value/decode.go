package value

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/buger/jsonparser"
)

// Decode parses a JSON document into a Value, preserving object key order
// exactly as it appears in the source. This is the engine's JSON decoder
// collaborator (spec §1 leaves the concrete decoder unspecified); it is
// used both for input documents handed to Search and for the content of
// backtick literal tokens once the lexer has isolated it.
//
// jsonparser is used instead of encoding/json specifically because
// ObjectEach/ArrayEach walk the document in source order, which a
// map[string]interface{} round-trip cannot reconstruct.
func Decode(data []byte) (Value, error) {
	v, dataType, _, err := jsonparser.Get(data)
	if err != nil {
		return Null, fmt.Errorf("decoding JSON: %w", err)
	}
	return decodeTyped(v, dataType)
}

func decodeTyped(data []byte, dataType jsonparser.ValueType) (Value, error) {
	switch dataType {
	case jsonparser.Null, jsonparser.NotExist:
		return Null, nil
	case jsonparser.Boolean:
		b, err := jsonparser.ParseBoolean(data)
		if err != nil {
			return Null, fmt.Errorf("decoding boolean: %w", err)
		}
		return Bool(b), nil
	case jsonparser.Number:
		n, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return Null, fmt.Errorf("decoding number %q: %w", data, err)
		}
		return Number(n), nil
	case jsonparser.String:
		s, err := jsonparser.ParseString(data)
		if err != nil {
			return Null, fmt.Errorf("decoding string: %w", err)
		}
		return String(s), nil
	case jsonparser.Array:
		var elems []Value
		var decodeErr error
		_, err := jsonparser.ArrayEach(data, func(value []byte, dt jsonparser.ValueType, _ int, entryErr error) {
			if decodeErr != nil {
				return
			}
			if entryErr != nil {
				decodeErr = entryErr
				return
			}
			elem, err := decodeTyped(value, dt)
			if err != nil {
				decodeErr = err
				return
			}
			elems = append(elems, elem)
		})
		if err != nil {
			return Null, fmt.Errorf("decoding array: %w", err)
		}
		if decodeErr != nil {
			return Null, decodeErr
		}
		if elems == nil {
			elems = []Value{}
		}
		return Array(elems), nil
	case jsonparser.Object:
		obj := NewObject()
		var decodeErr error
		err := jsonparser.ObjectEach(data, func(key []byte, value []byte, dt jsonparser.ValueType, _ int) error {
			k := string(key)
			if unescaped, err := jsonparser.Unescape(key, nil); err == nil {
				k = string(unescaped)
			}
			elem, err := decodeTyped(value, dt)
			if err != nil {
				return err
			}
			obj.Set(k, elem)
			return nil
		})
		if err != nil {
			return Null, fmt.Errorf("decoding object: %w", err)
		}
		if decodeErr != nil {
			return Null, decodeErr
		}
		return FromObject(obj), nil
	default:
		return Null, fmt.Errorf("unsupported JSON value type %v", dataType)
	}
}

// DecodeQuotedIdentifier unescapes the raw content of a "..." token (spec
// §4.1): the lexer leaves escapes untouched, so the content is JSON-decoded
// as if it were a bare JSON string.
func DecodeQuotedIdentifier(content string) (string, error) {
	s, err := jsonparser.ParseString([]byte(`"` + content + `"`))
	if err != nil {
		return "", fmt.Errorf("decoding quoted identifier: %w", err)
	}
	return s, nil
}

// DecodeLiteral applies spec §4.1's three literal-decoding rules to the raw
// content of a `...` token:
//
//  1. content trimmed of surrounding whitespace starts with one of
//     " [ { <digit> - : decode the trimmed content directly as JSON.
//  2. content equals null/true/false: the corresponding scalar.
//  3. otherwise: decode `"<content>"` as a bare JSON string.
func DecodeLiteral(content string) (Value, error) {
	trimmed := strings.TrimSpace(content)
	switch trimmed {
	case "null":
		return Null, nil
	case "true":
		return Bool(true), nil
	case "false":
		return Bool(false), nil
	}
	if len(trimmed) > 0 {
		c := trimmed[0]
		if c == '"' || c == '[' || c == '{' || c == '-' || (c >= '0' && c <= '9') {
			return Decode([]byte(trimmed))
		}
	}
	return Decode([]byte(`"` + content + `"`))
}
