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

// Package datatable provides a row-major table: an ordered sequence of
// heterogeneous rows sharing one column-label index.
//
// Tables are built once by a constructor (FromRows, FromMaps, FromColumns,
// FromRecords, FromSource), read through Index and its helpers, and mutated
// in place by the row-sequence mutators. Conversion to column-major form
// (ToColumns, ToTypedColumns, ToExternal) never modifies the table.
//
// # Indexing
//
//	t, _ := datatable.FromRows([]datatable.Label{"x", "y"}, [][]datatable.Value{
//	    {1, "a"},
//	    {2, "b"},
//	})
//	res, _ := t.Index(datatable.At(0), datatable.Col(datatable.Name("y"))) // res.Cell == "a"
//	res, _ = t.IndexCols(datatable.Col(datatable.Name("x")))             // res.Values == [1 2]
//	res, _ = t.Index(datatable.RowList(1, 0), datatable.AllCols())       // res.Table rows [[2 b] [1 a]]
//
// Positions are zero-based. Tables are not safe for concurrent use.
package datatable
