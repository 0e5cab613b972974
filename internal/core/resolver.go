package core

import (
	"pypack/internal/types"
)

// operatorBuckets groups specifier clauses by operator. It is a
// fixed-size map over the eight recognized operators; adding a clause
// with any other operator is a no-op.
type operatorBuckets struct {
	clauses map[types.SpecifierOp][]types.SpecifierClause
}

func newOperatorBuckets() *operatorBuckets {
	buckets := &operatorBuckets{clauses: make(map[types.SpecifierOp][]types.SpecifierClause, len(types.OperatorSymbols))}
	for _, op := range types.OperatorSymbols {
		buckets.clauses[op] = nil
	}
	return buckets
}

// add appends a clause to its operator bucket. Unknown operators and
// exact duplicates are dropped; duplicate clauses carry no information
// in a conjunction.
func (b *operatorBuckets) add(clause types.SpecifierClause) {
	if !clause.Op.Known() {
		return
	}
	for _, existing := range b.clauses[clause.Op] {
		if existing == clause {
			return
		}
	}
	b.clauses[clause.Op] = append(b.clauses[clause.Op], clause)
}

func (b *operatorBuckets) get(op types.SpecifierOp) []types.SpecifierClause {
	return b.clauses[op]
}

func (b *operatorBuckets) drop(op types.SpecifierOp) {
	b.clauses[op] = nil
}

// keepMin reduces a bucket to the single clause with the lowest version.
func (b *operatorBuckets) keepMin(op types.SpecifierOp, cache *versionCache) {
	bucket := b.clauses[op]
	if len(bucket) < 2 {
		return
	}
	best := bucket[0]
	for _, clause := range bucket[1:] {
		if cache.compare(clause.Version, best.Version) < 0 {
			best = clause
		}
	}
	b.clauses[op] = []types.SpecifierClause{best}
}

// keepMax reduces a bucket to the single clause with the highest version.
func (b *operatorBuckets) keepMax(op types.SpecifierOp, cache *versionCache) {
	bucket := b.clauses[op]
	if len(bucket) < 2 {
		return
	}
	best := bucket[0]
	for _, clause := range bucket[1:] {
		if cache.compare(clause.Version, best.Version) > 0 {
			best = clause
		}
	}
	b.clauses[op] = []types.SpecifierClause{best}
}

// ResolveSpecifiers combines duplicated and overlapping specifier
// clauses for a single dependency into a minimal equivalent set. All
// clauses must belong to the same dependency; callers partition by name
// first. Clauses with unrecognized operators are silently dropped.
//
// The reduction keeps the tightest bound per operator, then tightens
// across operators: a strict lower bound subsumes a weaker inclusive
// one, and an equality pin subsumes any bound it already satisfies.
// Contradictory == pins are all retained; rejecting an unsatisfiable
// conjunction is the caller's concern.
func ResolveSpecifiers(specifiers types.SpecifierSet) types.SpecifierSet {
	buckets := newOperatorBuckets()
	for _, clause := range specifiers {
		buckets.add(clause)
	}
	cache := newVersionCache()

	buckets.keepMin(types.SpecifierOpLte, cache)
	buckets.keepMin(types.SpecifierOpLt, cache)
	buckets.keepMax(types.SpecifierOpGte, cache)
	buckets.keepMax(types.SpecifierOpGt, cache)

	// merge e.g. >1.2.3 and >=1.2.2 into >1.2.3
	if gt, gte := buckets.get(types.SpecifierOpGt), buckets.get(types.SpecifierOpGte); len(gt) > 0 && len(gte) > 0 {
		if cache.compare(gt[0].Version, gte[0].Version) > 0 {
			buckets.drop(types.SpecifierOpGte)
		}
	}

	// merge e.g. >=1.2.2 and ==1.2.3 into ==1.2.3
	if gte := buckets.get(types.SpecifierOpGte); len(gte) > 0 {
		for _, eq := range buckets.get(types.SpecifierOpEq) {
			if cache.compare(eq.Version, gte[0].Version) >= 0 {
				buckets.drop(types.SpecifierOpGte)
				break
			}
		}
	}

	// merge e.g. <=1.2.3 and <1.2.2 into <1.2.2
	if lt, lte := buckets.get(types.SpecifierOpLt), buckets.get(types.SpecifierOpLte); len(lt) > 0 && len(lte) > 0 {
		if cache.compare(lt[0].Version, lte[0].Version) < 0 {
			buckets.drop(types.SpecifierOpLte)
		}
	}

	// merge e.g. <=1.2.3 and ==1.2.2 into ==1.2.2
	if lte := buckets.get(types.SpecifierOpLte); len(lte) > 0 {
		for _, eq := range buckets.get(types.SpecifierOpEq) {
			if cache.compare(eq.Version, lte[0].Version) <= 0 {
				buckets.drop(types.SpecifierOpLte)
				break
			}
		}
	}

	var resolved types.SpecifierSet
	for _, op := range types.OperatorSymbols {
		resolved = append(resolved, buckets.get(op)...)
	}
	return resolved
}
