package ripple

// Transact runs body inside a transaction on tx and returns its result. It
// is the with-result form of the WithTransaction methods (Go methods cannot
// introduce type parameters).
//
//	removed := ripple.Transact(ids, func() bool {
//	    ids.Insert(4)
//	    return ids.Remove(1)
//	})
func Transact[R any](tx Transactional, body func() R) R {
	tx.BeginTransaction()
	defer tx.EndTransaction()
	return body()
}

// TransactAll opens a transaction on every given observable for the duration
// of body, ending them in reverse order. Useful when one batch mutates
// several observables.
func TransactAll(body func(), txs ...Transactional) {
	for _, tx := range txs {
		tx.BeginTransaction()
	}
	defer func() {
		for i := len(txs) - 1; i >= 0; i-- {
			txs[i].EndTransaction()
		}
	}()
	body()
}
