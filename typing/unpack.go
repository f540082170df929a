package typing

// UnpackArgsItem returns the item type seen by a *args binding declared as ty.
// Sequence-like variants contribute their element type, every other variant
// contributes Any.
func UnpackArgsItem(ty Ty) Ty {
	return project(ty, func(b Basic) Ty {
		if item, ok := b.SequenceItem(); ok {
			return item
		}
		return Any()
	})
}

// UnpackKwargsValue returns the value type seen by a **kwargs binding
// declared as ty. Mapping-like variants contribute their value type, every
// other variant contributes Any.
func UnpackKwargsValue(ty Ty) Ty {
	return project(ty, func(b Basic) Ty {
		if _, value, ok := b.MappingValue(); ok {
			return value
		}
		return Any()
	})
}

func project(ty Ty, fn func(Basic) Ty) Ty {
	out := Never()
	for _, b := range ty.variants() {
		out = Union(out, fn(b))
	}
	return out
}
