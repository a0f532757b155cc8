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

package analysis

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/poiesic/marifa/core"
)

// MaxTextBytes bounds the size of an analyzed text.
const MaxTextBytes = 1 << 20

// requestValidate is the validator instance for analysis requests.
var requestValidate *validator.Validate

func init() {
	requestValidate = validator.New()
	_ = requestValidate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}

// request is one analysis call as seen at the validation boundary.
type request struct {
	Text    string   `validate:"required,notblank"`
	Options *Options `validate:"required"`
}

// validate checks the request and maps validator errors onto core.ErrValidation.
// The validator's max tag counts runes, so the byte bound is checked here.
func (r *request) validate() error {
	err := requestValidate.Struct(r)
	if err == nil {
		if len(r.Text) > MaxTextBytes {
			return fmt.Errorf("%w: text is %d bytes, limit is %d", core.ErrValidation, len(r.Text), MaxTextBytes)
		}
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		parts := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			parts = append(parts, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
		}
		return fmt.Errorf("%w: %s", core.ErrValidation, strings.Join(parts, "; "))
	}
	return fmt.Errorf("%w: %w", core.ErrValidation, err)
}
