package comparer

import (
	"encoding/json"

	"github.com/google/go-cmp/cmp"
)

// JSONRawMessage compara documentos JSON semanticamente (ordem de chaves e espaços não importam).
func JSONRawMessage() cmp.Option {
	return cmp.Comparer(func(x, y json.RawMessage) bool {
		if len(x) == 0 || len(y) == 0 {
			return len(x) == len(y)
		}

		var xObj, yObj any
		if json.Unmarshal(x, &xObj) != nil || json.Unmarshal(y, &yObj) != nil {
			return false
		}

		return cmp.Equal(xObj, yObj)
	})
}
