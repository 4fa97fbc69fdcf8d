package state

import "sort"

// Vars is the mutable variable scope a checkpoint controller operates
// on. The caller constructs it, binds it to a controller, and keeps
// reading and writing its bindings between restore/save calls; the
// controller only borrows it during those calls.
//
// Vars is not safe for concurrent use. The checkpoint model is
// single-threaded: one computation owns its scope.
type Vars struct {
	values map[string]Value
}

// NewVars creates an empty variable scope.
func NewVars() *Vars {
	return &Vars{values: make(map[string]Value)}
}

// Set stores a value under name, creating or overwriting the binding.
func (v *Vars) Set(name string, val Value) {
	v.values[name] = val
}

// Get returns the value bound to name.
func (v *Vars) Get(name string) (Value, bool) {
	val, ok := v.values[name]
	return val, ok
}

// Has reports whether name is bound.
func (v *Vars) Has(name string) bool {
	_, ok := v.values[name]
	return ok
}

// Delete removes a binding. Deleting an unbound name is a no-op.
func (v *Vars) Delete(name string) {
	delete(v.values, name)
}

// Len returns the number of bindings.
func (v *Vars) Len() int {
	return len(v.values)
}

// Names returns all bound names in sorted order.
func (v *Vars) Names() []string {
	names := make([]string, 0, len(v.values))
	for name := range v.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Capture snapshots the current bindings as a name-to-value mapping.
// With no arguments every binding is captured; with names only the
// named subset is. Names with no binding are omitted, not an error.
// Values are deep-copied so later scope mutation cannot alter the
// snapshot.
func (v *Vars) Capture(names ...string) map[string]Value {
	out := make(map[string]Value)
	if len(names) == 0 {
		for name, val := range v.values {
			out[name] = val.Clone()
		}
		return out
	}
	for _, name := range names {
		if val, ok := v.values[name]; ok {
			out[name] = val.Clone()
		}
	}
	return out
}

// Inject writes each mapping entry into the scope, creating or
// overwriting bindings in place so the values are immediately visible
// to the computation that owns the scope. With names given, only the
// matching subset is injected and other bindings are left untouched.
func (v *Vars) Inject(m map[string]Value, names ...string) {
	if len(names) == 0 {
		for name, val := range m {
			v.values[name] = val
		}
		return
	}
	for _, name := range names {
		if val, ok := m[name]; ok {
			v.values[name] = val
		}
	}
}

// Typed setters. Each creates or overwrites the named binding.

// SetBool binds a boolean.
func (v *Vars) SetBool(name string, val bool) { v.Set(name, Bool(val)) }

// SetInt binds an integer.
func (v *Vars) SetInt(name string, val int64) { v.Set(name, Int(val)) }

// SetFloat binds a float.
func (v *Vars) SetFloat(name string, val float64) { v.Set(name, Float(val)) }

// SetString binds a string.
func (v *Vars) SetString(name string, val string) { v.Set(name, String(val)) }

// SetInts binds an integer array.
func (v *Vars) SetInts(name string, val []int64) { v.Set(name, Ints(val)) }

// SetFloats binds a float array.
func (v *Vars) SetFloats(name string, val []float64) { v.Set(name, Floats(val)) }

// SetStrings binds a string array.
func (v *Vars) SetStrings(name string, val []string) { v.Set(name, Strings(val)) }

// SetMap binds a nested mapping.
func (v *Vars) SetMap(name string, val map[string]Value) { v.Set(name, Map(val)) }

// Typed getters. Each returns defaultVal if the name is unbound or
// the bound value has a different kind.

// Bool returns the boolean bound to name, or defaultVal.
func (v *Vars) Bool(name string, defaultVal bool) bool {
	if val, ok := v.values[name]; ok {
		if b, ok := val.Bool(); ok {
			return b
		}
	}
	return defaultVal
}

// Int returns the integer bound to name, or defaultVal.
func (v *Vars) Int(name string, defaultVal int64) int64 {
	if val, ok := v.values[name]; ok {
		if i, ok := val.Int(); ok {
			return i
		}
	}
	return defaultVal
}

// Float returns the float bound to name, or defaultVal.
func (v *Vars) Float(name string, defaultVal float64) float64 {
	if val, ok := v.values[name]; ok {
		if f, ok := val.Float(); ok {
			return f
		}
	}
	return defaultVal
}

// String returns the string bound to name, or defaultVal.
func (v *Vars) String(name string, defaultVal string) string {
	if val, ok := v.values[name]; ok {
		if s, ok := val.String(); ok {
			return s
		}
	}
	return defaultVal
}

// Ints returns the integer array bound to name, or defaultVal.
func (v *Vars) Ints(name string, defaultVal []int64) []int64 {
	if val, ok := v.values[name]; ok {
		if is, ok := val.Ints(); ok {
			return is
		}
	}
	return defaultVal
}

// Floats returns the float array bound to name, or defaultVal.
func (v *Vars) Floats(name string, defaultVal []float64) []float64 {
	if val, ok := v.values[name]; ok {
		if fs, ok := val.Floats(); ok {
			return fs
		}
	}
	return defaultVal
}

// Strings returns the string array bound to name, or defaultVal.
func (v *Vars) Strings(name string, defaultVal []string) []string {
	if val, ok := v.values[name]; ok {
		if ss, ok := val.Strings(); ok {
			return ss
		}
	}
	return defaultVal
}

// Map returns the nested mapping bound to name, or defaultVal.
func (v *Vars) Map(name string, defaultVal map[string]Value) map[string]Value {
	if val, ok := v.values[name]; ok {
		if m, ok := val.Map(); ok {
			return m
		}
	}
	return defaultVal
}
