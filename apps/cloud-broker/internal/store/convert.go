package store

import (
	"fmt"
	"reflect"
	"strconv"
)

// redisFields はredisタグ付きフィールドを走査する。
// redis:"-"タグおよびタグなしフィールドはスキップする。
func redisFields(val reflect.Value, fn func(tag string, field reflect.Value) error) error {
	typ := val.Type()
	for i := 0; i < val.NumField(); i++ {
		tag := typ.Field(i).Tag.Get("redis")
		if tag == "" || tag == "-" {
			continue
		}
		if err := fn(tag, val.Field(i)); err != nil {
			return fmt.Errorf("field %s: %w", typ.Field(i).Name, err)
		}
	}
	return nil
}

// StructToMap はredisタグ付き構造体をHSET用のmapに変換する。
func StructToMap(v any) map[string]any {
	val := reflect.ValueOf(v)
	if val.Kind() == reflect.Pointer {
		val = val.Elem()
	}
	result := make(map[string]any, val.NumField())
	_ = redisFields(val, func(tag string, field reflect.Value) error {
		result[tag] = field.Interface()
		return nil
	})
	return result
}

// MapToStruct はHGETALLの結果をredisタグ付き構造体に設定する。
// mapに存在しないフィールドはゼロ値のまま残す。
func MapToStruct(m map[string]string, v any) error {
	val := reflect.ValueOf(v)
	if val.Kind() != reflect.Pointer || val.IsNil() {
		return fmt.Errorf("MapToStruct: pointer required")
	}
	return redisFields(val.Elem(), func(tag string, field reflect.Value) error {
		s, ok := m[tag]
		if !ok {
			return nil
		}
		return setField(field, s)
	})
}

func setField(field reflect.Value, s string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(s)
	case reflect.Int, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid int value %q: %w", s, err)
		}
		field.SetInt(n)
	case reflect.Uint, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid uint value %q: %w", s, err)
		}
		field.SetUint(n)
	case reflect.Bool:
		// go-redisはboolを"1"/"0"で書き込む
		b, err := strconv.ParseBool(s)
		if err != nil {
			return fmt.Errorf("invalid bool value %q: %w", s, err)
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("unsupported type: %s", field.Kind())
	}
	return nil
}
