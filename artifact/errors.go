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

package artifact

import (
	"errors"
	"fmt"
)

var (
	// ErrLoad matches every error returned when an artifact cannot be loaded.
	ErrLoad = errors.New("artifact load failed")

	// ErrSourceRequired is returned when a loader is created without a source.
	ErrSourceRequired = errors.New("artifact source required")

	// ErrNilBundle indicates a bundle or one of its four parts is missing.
	ErrNilBundle = errors.New("artifact bundle is incomplete")

	// ErrBadMagic indicates the payload does not start with the artifact marker.
	ErrBadMagic = errors.New("not a course recommendation artifact")

	// ErrUnsupportedVersion indicates a payload written by an unknown format version.
	ErrUnsupportedVersion = errors.New("unsupported artifact version")

	// ErrArity indicates the payload does not hold exactly four components.
	ErrArity = errors.New("artifact must contain exactly four components")

	// ErrPayloadTooLarge indicates a compressed artifact inflates past MaxPayloadSize.
	ErrPayloadTooLarge = errors.New("artifact payload too large")

	// ErrTrailingData indicates bytes remain after the last component.
	ErrTrailingData = errors.New("trailing data after artifact payload")

	// ErrUnknownFormat indicates an export file with an unrecognized extension.
	ErrUnknownFormat = errors.New("unknown export format")
)

// LoadError reports a failure to load an artifact from a location.
// It matches both ErrLoad and the underlying cause with errors.Is.
type LoadError struct {
	Location string
	Err      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load artifact %s: %v", e.Location, e.Err)
}

func (e *LoadError) Unwrap() []error {
	return []error{ErrLoad, e.Err}
}

func newLoadError(location string, err error) error {
	var le *LoadError
	if errors.As(err, &le) {
		return err
	}
	return &LoadError{Location: location, Err: err}
}
