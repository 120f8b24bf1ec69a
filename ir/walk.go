package ir

// WalkFunc is called for each item in pre-order. path is the index path of
// the item and key its dict key ("" for array elements and the root). The
// path slice is reused between calls; copy it to retain it. Returning false
// skips the item's children.
type WalkFunc func(path []int, key string, it *Item) (bool, error)

func (it *Item) Walk(f WalkFunc) error {
	return it.walk(make([]int, 0, 8), "", f)
}

func (it *Item) walk(path []int, key string, f WalkFunc) error {
	dive, err := f(path, key, it)
	if err != nil {
		return err
	}
	if !dive {
		return nil
	}
	switch it.Type {
	case ArrayType:
		for i, v := range it.Array {
			if err := v.walk(append(path, i), "", f); err != nil {
				return err
			}
		}
	case DictType:
		for i := range it.Dict.Len() {
			p := it.Dict.At(i)
			if err := p.Value.walk(append(path, i), p.Key, f); err != nil {
				return err
			}
		}
	}
	return nil
}
