package models

// Document is a loosely typed record. Fields the server does not know about
// are stored and returned untouched.
type Document map[string]interface{}

// String returns the field as a string, or "" if it is missing or not a string.
func (d Document) String(key string) string {
	v, _ := d[key].(string)
	return v
}

// Without returns a shallow copy of d minus the given keys.
func (d Document) Without(keys ...string) Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	for _, k := range keys {
		delete(out, k)
	}
	return out
}
