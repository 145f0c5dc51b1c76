/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package apis

import "reflect"

// Converter performs runtime value conversion.
type Converter interface {
	// Convert returns v converted to t, or v itself when it already
	// satisfies t.
	Convert(v any, t reflect.Type) (any, error)
	// ConvertAll converts element-wise. When lenient is true a failed
	// element keeps its original value; otherwise the first failure aborts.
	ConvertAll(vs []any, ts Signature, lenient bool) ([]any, error)
}

// Invoker binds arguments to a resolved callable and calls it.
type Invoker interface {
	// Invoke calls c on receiver with args, converting args when direct
	// binding fails.
	Invoke(receiver any, c Callable, args []any) (any, error)
}
