package puzzle

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/buger/jsonparser"
)

// Member is one key/value pair of a decoded JSON object.
type Member struct {
	Key   string
	Value any
}

// Object is a decoded JSON object that keeps its keys in document order.
type Object struct {
	Members []Member
}

// Get returns the value stored under key. When a key repeats, the last
// occurrence wins, matching encoding/json.
func (o *Object) Get(key string) (any, bool) {
	for i := len(o.Members) - 1; i >= 0; i-- {
		if o.Members[i].Key == key {
			return o.Members[i].Value, true
		}
	}
	return nil, false
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Len returns the number of members.
func (o *Object) Len() int { return len(o.Members) }

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decode parses a JSON document into a tree of *Object, []any, string,
// json.Number, bool and nil values. The document is validated by
// encoding/json first; jsonparser then walks it in document order.
func Decode(data []byte) (any, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	value, typ, _, err := jsonparser.Get(raw)
	if err != nil {
		return nil, err
	}
	return decodeValue(value, typ)
}

func decodeValue(value []byte, typ jsonparser.ValueType) (any, error) {
	switch typ {
	case jsonparser.Object:
		obj := &Object{}
		err := jsonparser.ObjectEach(value, func(key, v []byte, t jsonparser.ValueType, _ int) error {
			x, err := decodeValue(v, t)
			if err != nil {
				return err
			}
			obj.Members = append(obj.Members, Member{Key: string(key), Value: x})
			return nil
		})
		if err != nil {
			return nil, err
		}
		return obj, nil
	case jsonparser.Array:
		arr := []any{}
		var elemErr error
		_, err := jsonparser.ArrayEach(value, func(v []byte, t jsonparser.ValueType, _ int, err error) {
			if elemErr != nil {
				return
			}
			if err != nil {
				elemErr = err
				return
			}
			x, err := decodeValue(v, t)
			if err != nil {
				elemErr = err
				return
			}
			arr = append(arr, x)
		})
		if err == nil {
			err = elemErr
		}
		if err != nil {
			return nil, err
		}
		return arr, nil
	case jsonparser.String:
		return jsonparser.ParseString(value)
	case jsonparser.Number:
		return json.Number(value), nil
	case jsonparser.Boolean:
		return jsonparser.ParseBoolean(value)
	case jsonparser.Null:
		return nil, nil
	default:
		return nil, fmt.Errorf("unexpected JSON value %q", value)
	}
}

// asObject views v as an ordered object. Plain maps are converted with
// their keys in natural order.
func asObject(v any) (*Object, bool) {
	switch o := v.(type) {
	case *Object:
		return o, o != nil
	case Object:
		return &o, true
	case map[string]any:
		keys := make([]string, 0, len(o))
		for k := range o {
			keys = append(keys, k)
		}
		slices.SortFunc(keys, naturalCompare)
		obj := &Object{Members: make([]Member, 0, len(keys))}
		for _, k := range keys {
			obj.Members = append(obj.Members, Member{Key: k, Value: o[k]})
		}
		return obj, true
	default:
		return nil, false
	}
}

// naturalCompare orders numeric keys by value and places them before
// non-numeric keys, which compare lexically.
func naturalCompare(a, b string) int {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	switch {
	case errA == nil && errB == nil:
		return cmp.Compare(na, nb)
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

// asInt converts a JSON number to an int. ok is false for non-numbers and
// for numbers with a fractional part.
func asInt(v any) (n int, ok bool) {
	switch x := v.(type) {
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return int(i), true
		}
		f, err := x.Float64()
		if err != nil {
			return 0, false
		}
		return floatToInt(f)
	case float64:
		return floatToInt(x)
	case float32:
		return floatToInt(float64(x))
	case int:
		return x, true
	case int64:
		return int(x), true
	case int32:
		return int(x), true
	default:
		return 0, false
	}
}

func floatToInt(f float64) (int, bool) {
	if f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}
