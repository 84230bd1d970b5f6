package entity

import "iter"

// materialize resolves every declared field once, in order, skipping
// suppressed ones. The returned Mapping is private to the call.
func (e *Entity) materialize() (*Mapping, error) {
	inner := NewMapping(len(e.typ.fields))

	for _, field := range e.typ.fields {
		v, suppressed, err := e.resolve(field)
		if err != nil {
			return nil, err
		}

		if suppressed {
			continue
		}

		inner.Set(field, v)
	}

	return inner, nil
}

// Pairs resolves all fields against the current state of the wrapped object
// and returns the non-suppressed (field, value) pairs in declared order.
// Any field that cannot be resolved fails the whole call.
func (e *Entity) Pairs() (iter.Seq2[string, any], error) {
	inner, err := e.materialize()
	if err != nil {
		return nil, err
	}

	return inner.All(), nil
}

// ToMapping collects Pairs into an ordered Mapping.
func (e *Entity) ToMapping() (*Mapping, error) {
	pairs, err := e.Pairs()
	if err != nil {
		return nil, err
	}

	return Collect(pairs), nil
}

// Map is ToMapping without ordering.
func (e *Entity) Map() (map[string]any, error) {
	m, err := e.ToMapping()
	if err != nil {
		return nil, err
	}

	return m.Map(), nil
}

// MergeInto materializes e into dst, which must be non-nil and empty.
func (e *Entity) MergeInto(dst map[string]any) error {
	if dst == nil || len(dst) > 0 {
		return ErrMergeTarget
	}

	pairs, err := e.Pairs()
	if err != nil {
		return err
	}

	for k, v := range pairs {
		dst[k] = v
	}

	return nil
}
