package service

import (
	"bytes"
	"encoding/json"
)

// Nullable 区分 JSON 中"未传"、"显式 null"与"有值"三种情况
type Nullable[T any] struct {
	Set   bool // 请求中包含该字段
	Null  bool // 字段值为 null
	Value T
}

func (n *Nullable[T]) UnmarshalJSON(b []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		n.Null = true
		return nil
	}
	return json.Unmarshal(b, &n.Value)
}

// Ptr 返回值指针，null 时为 nil
func (n Nullable[T]) Ptr() *T {
	if n.Null {
		return nil
	}
	v := n.Value
	return &v
}
