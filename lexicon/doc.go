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

// Package lexicon manages the vocabulary of roots and terms that names
// concepts in the concept store.
//
// Entries are stored through storage.LexiconRepository, keyed by term and
// indexed by root. Terms missing from the lexicon can be drafted by an
// ai.EntryGenerator; drafted entries are stored with Generated set so they
// can be told apart from curated ones.
package lexicon
