// Copyright 2025 CUE Authors
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

package scenarios

import (
	"testing"

	"github.com/go-quicktest/qt"
)

func TestAllListsSixScenarios(t *testing.T) {
	qt.Assert(t, qt.HasLen(All(), 6))
}

func TestLookup(t *testing.T) {
	s, ok := Lookup("S2")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(s.Want, 4))

	_, ok = Lookup("S7")
	qt.Assert(t, qt.IsFalse(ok))
}
