package httpx

// Profile is a named, immutable set of request headers.
type Profile map[string]string

// With returns a copy of p with key set to value.
func (p Profile) With(key, value string) Profile {
	out := make(Profile, len(p)+1)
	for k, v := range p {
		out[k] = v
	}
	out[key] = value
	return out
}

// Without returns a copy of p without key.
func (p Profile) Without(key string) Profile {
	out := make(Profile, len(p))
	for k, v := range p {
		if k != key {
			out[k] = v
		}
	}
	return out
}
