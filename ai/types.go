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

package ai

import "slices"

// EntryTypes lists the grammatical and semantic types a generated lexicon
// entry may carry.
var EntryTypes = []string{
	"adjective",
	"concept",
	"noun",
	"particle",
	"proper_noun",
	"verb",
	"verbal_noun",
}

// IsEntryType reports whether t is one of EntryTypes.
func IsEntryType(t string) bool {
	return slices.Contains(EntryTypes, t)
}
