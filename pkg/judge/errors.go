// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package judge

import (
	"errors"
	"fmt"

	"laptudirm.com/x/rpsplus/pkg/game"
)

var (
	// ErrUnavailable is returned when the model could not be reached or
	// did not answer in time, even after retrying.
	ErrUnavailable = errors.New("judge: oracle unavailable")

	// ErrMalformed is returned when the model's answer is not JSON, even
	// after extracting the outermost braces.
	ErrMalformed = errors.New("judge: malformed oracle response")

	// ErrSchema is matched by every *SchemaError.
	ErrSchema = errors.New("judge: oracle schema violation")
)

// SchemaError is returned when the model's answer parses but a field is
// missing or holds a value outside its domain.
type SchemaError struct {
	Field   string
	Problem string

	// Update holds the well-typed state_update flags which were present
	// in the answer. Missing flags are false, which is neutral on merge.
	Update game.StateUpdate
}

func (err *SchemaError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrSchema, err.Field, err.Problem)
}

func (err *SchemaError) Is(target error) bool {
	return target == ErrSchema
}
