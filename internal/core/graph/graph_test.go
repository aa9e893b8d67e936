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

package graph

import (
	"testing"

	"github.com/go-quicktest/qt"

	"cuelabs.dev/go/dataflow/internal/core/adt"
)

func testBothBackends(t *testing.T, f func(t *testing.T, s *Store[int])) {
	t.Run("sparse", func(t *testing.T) { f(t, NewSparse[int]()) })
	t.Run("dense", func(t *testing.T) { f(t, NewDense[int](10)) })
}

func TestUpdatePointReturnsPriorInfo(t *testing.T) {
	testBothBackends(t, func(t *testing.T, s *Store[int]) {
		p := adt.NewPoint(1, adt.IntArg(0))
		old := s.UpdatePoint(p, 5, nil)
		qt.Assert(t, qt.IsFalse(old.HasValue))

		old = s.UpdatePoint(p, 7, nil)
		qt.Assert(t, qt.IsTrue(old.HasValue))
		qt.Assert(t, qt.Equals(old.Value, 5))
		qt.Assert(t, qt.Equals(old.Iterations, uint32(1)))

		info, ok := s.Lookup(p)
		qt.Assert(t, qt.IsTrue(ok))
		qt.Assert(t, qt.Equals(info.Value, 7))
		qt.Assert(t, qt.Equals(info.Iterations, uint32(2)))
	})
}

func TestReferrerSymmetryMaintained(t *testing.T) {
	testBothBackends(t, func(t *testing.T, s *Store[int]) {
		p := adt.NewPoint(2, adt.IntArg(0))
		q := adt.NewPoint(1, adt.IntArg(0))
		r := adt.NewPoint(1, adt.IntArg(1))

		s.UpdatePoint(p, 1, []adt.Point{q})
		qInfo, ok := s.Lookup(q)
		qt.Assert(t, qt.IsTrue(ok))
		qt.Assert(t, qt.DeepEquals(qInfo.Referrers, []adt.Point{p}))

		// Replacing references(p) with {r} should drop p from referrers(q)
		// and add it to referrers(r).
		s.UpdatePoint(p, 2, []adt.Point{r})

		qInfo, _ = s.Lookup(q)
		qt.Assert(t, qt.HasLen(qInfo.Referrers, 0))

		rInfo, ok := s.Lookup(r)
		qt.Assert(t, qt.IsTrue(ok))
		qt.Assert(t, qt.DeepEquals(rInfo.Referrers, []adt.Point{p}))
	})
}

func TestLookupLTOrderAndBound(t *testing.T) {
	testBothBackends(t, func(t *testing.T, s *Store[int]) {
		s.UpdatePoint(adt.NewPoint(4, adt.IntArg(0)), 10, nil)
		s.UpdatePoint(adt.NewPoint(4, adt.IntArg(1)), 20, nil)
		s.UpdatePoint(adt.NewPoint(4, adt.IntArg(2)), 30, nil)

		lt := s.LookupLT(4, adt.Args(2))
		qt.Assert(t, qt.HasLen(lt, 2))
		qt.Assert(t, qt.Equals(lt[0].Value, 10))
		qt.Assert(t, qt.Equals(lt[1].Value, 20))

		qt.Assert(t, qt.HasLen(s.LookupLT(4, adt.Args(0)), 0))
	})
}

func TestDenseOutOfBoundsPanics(t *testing.T) {
	s := NewDense[int](2)
	defer func() {
		r := recover()
		qt.Assert(t, qt.IsNotNil(r))
	}()
	s.UpdatePoint(adt.NewPoint(5, adt.IntArg(0)), 1, nil)
}

func TestSparseDenseAgreeOnPoints(t *testing.T) {
	sparse := NewSparse[int]()
	dense := NewDense[int](5)
	for _, s := range []*Store[int]{sparse, dense} {
		s.UpdatePoint(adt.NewPoint(0, adt.IntArg(0)), 1, nil)
		s.UpdatePoint(adt.NewPoint(3, adt.IntArg(0)), 2, []adt.Point{adt.NewPoint(0, adt.IntArg(0))})
	}
	qt.Assert(t, qt.DeepEquals(sparse.Points(), dense.Points()))
}
