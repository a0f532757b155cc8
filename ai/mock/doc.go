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

// Package mock provides test doubles for the ai package interfaces.
//
// # Usage
//
//	gen := mock.NewMockEntryGenerator()
//	gen.GenerateEntryFunc = func(ctx context.Context, term string) (*ai.GeneratedEntry, error) {
//	    return &ai.GeneratedEntry{Root: "ر ح م", Type: "noun"}, nil
//	}
//
//	// Check calls
//	count := gen.CallCount()
//
// # Default Behavior
//
//   - MockEntryGenerator: derives a root from the first three letters of the
//     term (after a leading "ال"), types it "noun" and echoes the term as
//     its only example
//   - MockProvider: wraps a MockEntryGenerator and records Close
package mock
