package quota

// Resolve combines tier defaults with per-organization overrides to
// produce the effective limit for every resource dimension.
//
// Precedence per dimension: override value, then tier default, then the
// configured floor for organizations without a tier. Each dimension is
// resolved in isolation; the Unlimited sentinel passes through untouched.
// Pure function: no I/O, the floor arrives as an argument.
func Resolve(defaults Limits, overrides Limits, floor int64) Limits {
	resolved := make(Limits, len(Keys))
	for _, key := range Keys {
		if v, ok := overrides[key]; ok {
			resolved[key] = v
			continue
		}
		if v, ok := defaults[key]; ok {
			resolved[key] = v
			continue
		}
		resolved[key] = floor
	}
	return resolved
}
