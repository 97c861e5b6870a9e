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


// Package recommend maps a free-text query to a ranked list of course titles.
//
// The Recommender runs three stages over a loaded artifact bundle:
//   - Containment: case-insensitive substring search of the raw query over
//     the clean course titles
//   - Exact match: the normalized query compared to the clean titles
//   - Similarity ranking: the matched course's row of the similarity matrix,
//     sorted by descending score with the course itself left out
//
// A query that matches nothing yields a NotFound result, never an error.
package recommend
