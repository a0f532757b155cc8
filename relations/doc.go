// Copyright 2025 Poiesic Systems
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

// Package relations proposes relationships between extracted entities.
//
// Discovery runs three passes and concatenates their output: proximity
// (co_occurs_with), attribute applicability (has_attribute) and a type-pair
// table weighted by attribute similarity. The combined list is filtered by
// the caller's minimum confidence.
package relations
