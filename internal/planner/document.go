package planner

// Document is a decoded upstream JSON object. The upstream journey document
// is semi-structured: fields may be absent, and an absent field is a safe
// default at each access site, never a fault. Accessors therefore return
// zero values for missing or mistyped fields.
type Document map[string]any

// Object returns the nested object at key, or nil.
func (d Document) Object(key string) Document {
	if d == nil {
		return nil
	}
	if m, ok := d[key].(map[string]any); ok {
		return Document(m)
	}
	return nil
}

// Objects returns the array of objects at key, skipping non-object entries.
func (d Document) Objects(key string) []Document {
	if d == nil {
		return nil
	}
	raw, ok := d[key].([]any)
	if !ok {
		return nil
	}
	docs := make([]Document, 0, len(raw))
	for _, entry := range raw {
		if m, ok := entry.(map[string]any); ok {
			docs = append(docs, Document(m))
		}
	}
	return docs
}

// String returns the string at key, or "".
func (d Document) String(key string) string {
	if d == nil {
		return ""
	}
	if s, ok := d[key].(string); ok {
		return s
	}
	return ""
}

// Int returns the numeric value at key truncated to an int, or 0.
// encoding/json decodes all JSON numbers as float64.
func (d Document) Int(key string) int {
	if d == nil {
		return 0
	}
	if f, ok := d[key].(float64); ok {
		return int(f)
	}
	return 0
}
