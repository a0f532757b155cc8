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

// Package analysis composes pattern detection, entity extraction and
// relationship discovery into one text-analysis pass.
//
// Passes run in a fixed order (patterns, entities, relationships) and the
// relationship pass is fed the entities just extracted. Any failure inside a
// pass, including a panic, fails the whole analysis with ErrAnalysisFailed
// and no partial result.
package analysis
