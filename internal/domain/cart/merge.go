// internal/domain/cart/merge.go
package cart

// Merge combines a remote and a local line-up into one.
//
// Used once per session, at the moment a signed-in identity first becomes
// available, to reconcile whatever accumulated locally (offline / anonymous)
// with whatever was previously saved remotely (other device / other tab).
//
// Policy:
//   - union of ids, remote order first, local-only lines appended after
//   - on a shared id the remote line wins on metadata (name/price/image) and
//     the quantity becomes max(remoteQty, localQty)
//
// Max-wins keeps the merge cheap (no vector clocks, no timestamps) and errs
// toward never losing an addition made on either side. It cannot express an
// offline quantity *decrease*; a reconciliation never lowers a quantity.
func Merge(remote, local []CartItem) []CartItem {
	r := SanitizeAll(remote)
	l := SanitizeAll(local)

	out := make([]CartItem, 0, len(r)+len(l))
	index := make(map[string]int, len(r))

	for _, it := range r {
		index[it.ID] = len(out)
		out = append(out, it)
	}

	for _, it := range l {
		idx, ok := index[it.ID]
		if !ok {
			index[it.ID] = len(out)
			out = append(out, it)
			continue
		}
		if it.Quantity > out[idx].Quantity {
			out[idx].Quantity = it.Quantity
		}
	}

	return out
}
