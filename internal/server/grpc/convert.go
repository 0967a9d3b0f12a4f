package grpc

import "github.com/tessera-db/tessera/internal/tessera"

// toMutationMap folds the row list of a batch into the key → family → mutations map the
// operations manager takes. Rows repeated in the list are merged in order.
func toMutationMap(rows []RowMutation) tessera.MutationMap {
	out := make(tessera.MutationMap, len(rows))
	for _, row := range rows {
		key := string(row.Key)
		families, ok := out[key]
		if !ok {
			families = make(map[string][]tessera.Mutation, len(row.Mutations))
			out[key] = families
		}
		for cf, muts := range row.Mutations {
			families[cf] = append(families[cf], muts...)
		}
	}
	return out
}

// uniqueKeys drops repeated keys, keeping the first occurrence.
func uniqueKeys(keys [][]byte) [][]byte {
	seen := make(map[string]struct{}, len(keys))
	out := make([][]byte, 0, len(keys))
	for _, k := range keys {
		if _, dup := seen[string(k)]; dup {
			continue
		}
		seen[string(k)] = struct{}{}
		out = append(out, k)
	}
	return out
}

func toKeySlices(keys [][]byte, rows map[string][]tessera.ColumnOrSuperColumn) []tessera.KeySlice {
	out := make([]tessera.KeySlice, 0, len(keys))
	for _, k := range uniqueKeys(keys) {
		cols := rows[string(k)]
		if cols == nil {
			cols = []tessera.ColumnOrSuperColumn{}
		}
		out = append(out, tessera.KeySlice{Key: k, Columns: cols})
	}
	return out
}

func toKeyCounts(keys [][]byte, counts map[string]int32) []KeyCount {
	out := make([]KeyCount, 0, len(keys))
	for _, k := range uniqueKeys(keys) {
		out = append(out, KeyCount{Key: k, Count: counts[string(k)]})
	}
	return out
}
