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

package badger

// Repositories bundles the badger-backed repositories sharing one backend.
type Repositories struct {
	Backend  *Backend
	Concepts *ConceptRepository
	Nodes    *NodeRepository
	Lexicon  *LexiconRepository
}

// NewRepositories creates every repository on top of an open backend.
func NewRepositories(backend *Backend) (*Repositories, error) {
	concepts, err := NewConceptRepository(backend)
	if err != nil {
		return nil, err
	}

	nodes, err := NewNodeRepository(backend)
	if err != nil {
		concepts.Close()
		return nil, err
	}

	lexicon, err := NewLexiconRepository(backend)
	if err != nil {
		nodes.Close()
		concepts.Close()
		return nil, err
	}

	return &Repositories{
		Backend:  backend,
		Concepts: concepts,
		Nodes:    nodes,
		Lexicon:  lexicon,
	}, nil
}

// NewMemoryRepositories creates in-memory repositories for testing.
// Caller must call Close when done.
func NewMemoryRepositories() (*Repositories, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, err
	}

	repos, err := NewRepositories(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}
	return repos, nil
}

// Close closes every repository and then the backend.
func (r *Repositories) Close() error {
	r.Lexicon.Close()
	r.Nodes.Close()
	r.Concepts.Close()
	return r.Backend.Close()
}
