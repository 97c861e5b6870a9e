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


// Package storage defines the interface for persisting the recommendation
// artifacts outside the compressed artifact file.
//
// A store is written once by an import and opened read-only afterwards.
// Courses and similarity rows are stored individually so a single course or
// row can be read without decoding the whole bundle.
//
// Implementations are in subpackages (e.g., storage/badger).
package storage
