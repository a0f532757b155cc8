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

package core

import (
	"errors"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// MUS codecs for the fixed-shape records. Records with attribute maps
// (ConceptRecord, KnowledgeNode) have no MUS form and are stored as JSON.

var (
	errNegativeLength = errors.New("mus: negative length")
	errLengthOverflow = errors.New("mus: length exceeds input")
)

// IDMUS serializes an ID as a varint.
var IDMUS = idMUS{}

type idMUS struct{}

func (s idMUS) Marshal(v ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (s idMUS) Unmarshal(bs []byte) (v ID, n int, err error) {
	u, n, err := varint.Uint64.Unmarshal(bs)
	return ID(u), n, err
}

func (s idMUS) Size(v ID) (size int) {
	return varint.Uint64.Size(uint64(v))
}

func (s idMUS) Skip(bs []byte) (n int, err error) {
	return varint.Uint64.Skip(bs)
}

// timeMUS serializes a time as Unix seconds and nanoseconds, decoded in UTC.
var timeMUS = timeSer{}

type timeSer struct{}

func (s timeSer) Marshal(v time.Time, bs []byte) (n int) {
	n = varint.Int64.Marshal(v.Unix(), bs)
	return n + varint.Int.Marshal(v.Nanosecond(), bs[n:])
}

func (s timeSer) Unmarshal(bs []byte) (v time.Time, n int, err error) {
	sec, n, err := varint.Int64.Unmarshal(bs)
	if err != nil {
		return
	}
	nsec, n1, err := varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	return time.Unix(sec, int64(nsec)).UTC(), n, nil
}

func (s timeSer) Size(v time.Time) (size int) {
	return varint.Int64.Size(v.Unix()) + varint.Int.Size(v.Nanosecond())
}

// stringsMUS serializes a string slice as a length followed by its elements.
// An empty slice decodes as nil.
var stringsMUS = stringsSer{}

type stringsSer struct{}

func (s stringsSer) Marshal(v []string, bs []byte) (n int) {
	n = varint.Int.Marshal(len(v), bs)
	for _, e := range v {
		n += ord.String.Marshal(e, bs[n:])
	}
	return n
}

func (s stringsSer) Unmarshal(bs []byte) (v []string, n int, err error) {
	length, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return
	}
	if length < 0 {
		return nil, n, errNegativeLength
	}
	if length > len(bs)-n {
		return nil, n, errLengthOverflow
	}
	if length == 0 {
		return nil, n, nil
	}
	v = make([]string, length)
	for i := range v {
		var n1 int
		v[i], n1, err = ord.String.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return nil, n, err
		}
	}
	return v, n, nil
}

func (s stringsSer) Size(v []string) (size int) {
	size = varint.Int.Size(len(v))
	for _, e := range v {
		size += ord.String.Size(e)
	}
	return size
}

// LexiconEntryMUS serializes a LexiconEntry field by field in declaration order.
var LexiconEntryMUS = lexiconEntryMUS{}

type lexiconEntryMUS struct{}

func (s lexiconEntryMUS) Marshal(v LexiconEntry, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Term, bs[n:])
	n += ord.String.Marshal(v.Root, bs[n:])
	n += ord.String.Marshal(v.Type, bs[n:])
	n += ord.String.Marshal(v.Definition, bs[n:])
	n += stringsMUS.Marshal(v.Examples, bs[n:])
	n += ord.Bool.Marshal(v.Generated, bs[n:])
	n += timeMUS.Marshal(v.InsertedAt, bs[n:])
	return n + timeMUS.Marshal(v.UpdatedAt, bs[n:])
}

func (s lexiconEntryMUS) Unmarshal(bs []byte) (v LexiconEntry, n int, err error) {
	var n1 int
	if v.Id, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	for _, field := range []*string{&v.Term, &v.Root, &v.Type, &v.Definition} {
		*field, n1, err = ord.String.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	v.Examples, n1, err = stringsMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Generated, n1, err = ord.Bool.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.InsertedAt, n1, err = timeMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.UpdatedAt, n1, err = timeMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (s lexiconEntryMUS) Size(v LexiconEntry) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.Term)
	size += ord.String.Size(v.Root)
	size += ord.String.Size(v.Type)
	size += ord.String.Size(v.Definition)
	size += stringsMUS.Size(v.Examples)
	size += ord.Bool.Size(v.Generated)
	size += timeMUS.Size(v.InsertedAt)
	return size + timeMUS.Size(v.UpdatedAt)
}
