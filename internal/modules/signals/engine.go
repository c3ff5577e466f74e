package signals

// Engine evaluates the canonical rule table against an evaluation context.
// Stateless and safe for concurrent use.
type Engine struct {
	rules []Rule
}

// NewEngine creates a signal engine over the canonical rule table
func NewEngine() *Engine {
	return &Engine{rules: Rules}
}

// Evaluate runs every rule independently and returns the fired signals in
// table order. Rules with missing inputs contribute nothing.
func (e *Engine) Evaluate(ctx *Context) []Signal {
	var out []Signal

	for _, rule := range e.rules {
		detail, fired := rule.Eval(ctx)
		if !fired {
			continue
		}
		out = append(out, Signal{
			Title:  rule.Title,
			Detail: detail,
			Weight: rule.Weight,
		})
	}

	return out
}
