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

package mock

import (
	"context"
	"strings"
	"sync"

	"github.com/poiesic/marifa/ai"
)

// MockEntryGenerator is a test double for ai.EntryGenerator.
type MockEntryGenerator struct {
	// GenerateEntryFunc is called by GenerateEntry if set.
	// If nil, uses default deterministic behavior.
	GenerateEntryFunc func(ctx context.Context, term string) (*ai.GeneratedEntry, error)

	mu    sync.Mutex
	calls []string
}

var _ ai.EntryGenerator = (*MockEntryGenerator)(nil)

// NewMockEntryGenerator creates a mock generator with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockGenerator().
func NewMockEntryGenerator() *MockEntryGenerator {
	return &MockEntryGenerator{}
}

// GenerateEntry returns a deterministic entry derived from term.
// Default behavior: the root is the term's first three letters separated by
// spaces, the type is "noun" and the term itself is the only example.
func (m *MockEntryGenerator) GenerateEntry(ctx context.Context, term string) (*ai.GeneratedEntry, error) {
	m.mu.Lock()
	m.calls = append(m.calls, term)
	fn := m.GenerateEntryFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, term)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	letters := []rune(strings.TrimPrefix(term, "ال"))
	if len(letters) > 3 {
		letters = letters[:3]
	}
	parts := make([]string, len(letters))
	for i, r := range letters {
		parts[i] = string(r)
	}

	return &ai.GeneratedEntry{
		Root:       strings.Join(parts, " "),
		Type:       "noun",
		Definition: "mock definition of " + term,
		Examples:   []string{term},
	}, nil
}

// CallCount returns the number of times GenerateEntry was called.
func (m *MockEntryGenerator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// Calls returns the terms passed to GenerateEntry, in call order.
func (m *MockEntryGenerator) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// Reset clears the recorded calls and custom function.
func (m *MockEntryGenerator) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
	m.GenerateEntryFunc = nil
}
