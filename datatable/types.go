// Copyright 2025 Magnus Pierre
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package datatable

import (
	"fmt"
	"reflect"
	"strconv"
	"time"
)

// Label identifies a column. Labels are unique within a table.
type Label = string

// IntLabel returns the label used for an integer column token.
func IntLabel(n int) Label {
	return strconv.Itoa(n)
}

// Value is a single cell. Cells within a column may hold different types.
type Value = any

// DataType classifies the dynamic type of a cell value.
type DataType int

const (
	// TypeNull represents a nil value.
	TypeNull DataType = iota
	// TypeBool represents bool.
	TypeBool
	// TypeInt represents int.
	TypeInt
	// TypeInt8 represents int8.
	TypeInt8
	// TypeInt16 represents int16.
	TypeInt16
	// TypeInt32 represents int32.
	TypeInt32
	// TypeInt64 represents int64.
	TypeInt64
	// TypeUint represents uint.
	TypeUint
	// TypeUint8 represents uint8.
	TypeUint8
	// TypeUint16 represents uint16.
	TypeUint16
	// TypeUint32 represents uint32.
	TypeUint32
	// TypeUint64 represents uint64.
	TypeUint64
	// TypeFloat32 represents float32.
	TypeFloat32
	// TypeFloat64 represents float64.
	TypeFloat64
	// TypeString represents string.
	TypeString
	// TypeBinary represents []byte.
	TypeBinary
	// TypeTimestamp represents time.Time.
	TypeTimestamp
	// TypeList represents []any.
	TypeList
	// TypeAny represents any other Go type.
	TypeAny
)

var dataTypeNames = [...]string{
	TypeNull:      "Null",
	TypeBool:      "Bool",
	TypeInt:       "Int",
	TypeInt8:      "Int8",
	TypeInt16:     "Int16",
	TypeInt32:     "Int32",
	TypeInt64:     "Int64",
	TypeUint:      "Uint",
	TypeUint8:     "Uint8",
	TypeUint16:    "Uint16",
	TypeUint32:    "Uint32",
	TypeUint64:    "Uint64",
	TypeFloat32:   "Float32",
	TypeFloat64:   "Float64",
	TypeString:    "String",
	TypeBinary:    "Binary",
	TypeTimestamp: "Timestamp",
	TypeList:      "List",
	TypeAny:       "Any",
}

// String returns the string representation of a DataType.
func (dt DataType) String() string {
	if dt >= 0 && int(dt) < len(dataTypeNames) {
		return dataTypeNames[dt]
	}
	return fmt.Sprintf("Unknown(%d)", dt)
}

// ParseDataType is the inverse of DataType.String.
func ParseDataType(s string) (DataType, bool) {
	for i, name := range dataTypeNames {
		if name == s {
			return DataType(i), true
		}
	}
	return TypeAny, false
}

// TypeOf classifies v.
func TypeOf(v Value) DataType {
	switch v.(type) {
	case nil:
		return TypeNull
	case bool:
		return TypeBool
	case int:
		return TypeInt
	case int8:
		return TypeInt8
	case int16:
		return TypeInt16
	case int32:
		return TypeInt32
	case int64:
		return TypeInt64
	case uint:
		return TypeUint
	case uint8:
		return TypeUint8
	case uint16:
		return TypeUint16
	case uint32:
		return TypeUint32
	case uint64:
		return TypeUint64
	case float32:
		return TypeFloat32
	case float64:
		return TypeFloat64
	case string:
		return TypeString
	case []byte:
		return TypeBinary
	case time.Time:
		return TypeTimestamp
	case []any:
		return TypeList
	default:
		return TypeAny
	}
}

// RowKind selects how rows are materialized.
type RowKind int

const (
	// ArrayRows stores each row as a mutable Array.
	ArrayRows RowKind = iota
	// RecordRows stores each row as a fixed-shape Record.
	RecordRows
)

// String returns the string representation of a RowKind.
func (k RowKind) String() string {
	switch k {
	case ArrayRows:
		return "Array"
	case RecordRows:
		return "Record"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// valueEqual compares two cells. Timestamps compare by instant.
func valueEqual(a, b Value) bool {
	if ta, ok := a.(time.Time); ok {
		tb, ok := b.(time.Time)
		return ok && ta.Equal(tb)
	}
	return reflect.DeepEqual(a, b)
}

// deepCopyValue clones the container values a cell may hold.
func deepCopyValue(v Value) Value {
	switch x := v.(type) {
	case []byte:
		return append([]byte(nil), x...)
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = deepCopyValue(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = deepCopyValue(e)
		}
		return out
	default:
		return v
	}
}
