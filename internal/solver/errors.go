// Copyright 2014 Google Inc. All rights reserved.
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

package solver

import "errors"

// ErrCannotDecodeYet means the constraint matrix was singular over its
// active columns: there were not enough linearly independent rows to
// determine all intermediate symbols. It is not a bug — the caller should
// gather more encoding packets and retry with a freshly built matrix. The
// solver never retries internally.
var ErrCannotDecodeYet = errors.New("solver: insufficient linearly independent rows to decode")
