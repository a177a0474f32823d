package templates

import "strings"

// FilterOptions narrows the gallery. Empty fields match everything.
type FilterOptions struct {
	Categories []Category `json:"categories"`
	IDs        []string   `json:"ids"`
	FreeWords  string     `json:"q"`
}

// Filter returns the templates matching every non-empty option, in
// declaration order. FreeWords are matched case-insensitively against the id
// and label; all words must match.
func (r *Registry) Filter(opt FilterOptions) []Template {
	out := []Template{}
	kw := strings.Fields(strings.ToLower(opt.FreeWords))
	for _, t := range r.templates {
		if len(opt.Categories) > 0 {
			matched := false
			for _, c := range opt.Categories {
				if t.Category == c {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
		}
		if len(opt.IDs) > 0 {
			matched := false
			for _, id := range opt.IDs {
				if t.ID == id {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
		}
		if len(kw) > 0 {
			id := strings.ToLower(t.ID)
			label := strings.ToLower(t.Label)
			ok := true
			for _, k := range kw {
				if !strings.Contains(id, k) && !strings.Contains(label, k) {
					ok = false
					break
				}
			}
			if !ok {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}
