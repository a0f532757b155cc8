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

// Package patterns detects structural and semantic patterns in Arabic text.
//
// Structural matchers are a fixed table of lexical-sequence rules:
//   - conditional_sequence: إن/إذا/لو ... (ثم ...) ... ف
//   - exclusivity: ما/لا/إن ... إلا ...
//   - address: يا (أيها) ...
//   - oath, prohibition and immediate word repetition
//
// Semantic matchers (question/answer pairs and theme repetition) run only
// when requested. Detection is a pure function of the text, the options and
// the fixed tables; offsets in the returned patterns are character offsets.
package patterns
