package models

import (
	"fmt"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// StringList holds id references (modifier group ids on a product). Imported
// menus carried numeric ids, sometimes a bare value instead of an array, so
// decoding accepts strings, numbers and arrays of either.
type StringList []string

func (s *StringList) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	switch t {
	case bsontype.Null:
		*s = nil
		return nil
	case bsontype.Array:
		var values []interface{}
		if err := bson.UnmarshalValue(t, data, &values); err != nil {
			return err
		}
		out := make([]string, 0, len(values))
		for _, v := range values {
			id, err := idString(v)
			if err != nil {
				return err
			}
			if id != "" {
				out = append(out, id)
			}
		}
		*s = out
		return nil
	case bsontype.String, bsontype.Int32, bsontype.Int64, bsontype.Double:
		var value interface{}
		if err := bson.UnmarshalValue(t, data, &value); err != nil {
			return err
		}
		id, err := idString(value)
		if err != nil {
			return err
		}
		if id == "" {
			*s = []string{}
			return nil
		}
		*s = []string{id}
		return nil
	default:
		return fmt.Errorf("cannot decode %s into StringList", t)
	}
}

// MarshalBSONValue always stores the list as an array of strings.
func (s StringList) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if s == nil {
		return bson.MarshalValue([]string{})
	}
	return bson.MarshalValue([]string(s))
}

func idString(v interface{}) (string, error) {
	switch typed := v.(type) {
	case string:
		return strings.TrimSpace(typed), nil
	case int32:
		return strconv.FormatInt(int64(typed), 10), nil
	case int64:
		return strconv.FormatInt(typed, 10), nil
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("cannot decode %T into StringList element", v)
	}
}
