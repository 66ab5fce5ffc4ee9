// Package patterns holds the example scripts selectable with the digit keys.
package patterns

// Pattern is a named example script.
type Pattern struct {
	Name   string `yaml:"name"`
	Source string `yaml:"source"`
}

// Library is an ordered, read-only list of patterns. Index n is selected by
// pressing digit n, so only the first ten are reachable from the keyboard.
type Library []Pattern

// Builtin patterns. Index 0 is the startup script.
var Builtin = Library{
	{Name: "noise", Source: "cos(t+i+x*y)"},
	{Name: "spiral", Source: "let dx=x-16; let dy=y-16; max(sin(sqrt(dx*dx+dy*dy)+atan2(dy,dx)-2*t), 0)"},
	{Name: "waves", Source: "sin(x/2)-sin(x-t)-y+6"},
	{Name: "drift", Source: "a+(rand()-0.5)*(i/(32*32))"},
	{Name: "fire", Source: "max((y/40+v*2)-tan(x/PI+rand()-t+a)**2, 0)"},
	{Name: "voice ring", Source: "let c=x-16; let d=y-16; let h=sqrt(c*c+d*d); sin(1+h/(8+2*v+rand()))**20-abs(y/60*sin(t/5)+h/100)"},
	{Name: "ripple", Source: "sin(t-hypot(x-15.5, y-15.5)/2)"},
	{Name: "plaid", Source: "sin(x/3+t)*cos(y/3-t)"},
	{Name: "meter", Source: "y > 31 - v*64 ? 1.0 : a*0.85"},
	{Name: "echo", Source: "max(a*0.9, 1 - abs(hypot(x-16, y-16) - fract(t/2)*24)/2)"},
}

// Get returns the pattern selected by digit d.
func (l Library) Get(d int) (Pattern, bool) {
	if d < 0 || d >= len(l) {
		return Pattern{}, false
	}
	return l[d], true
}

// With returns a new library with extra patterns appended.
func (l Library) With(extra ...Pattern) Library {
	out := make(Library, 0, len(l)+len(extra))
	out = append(out, l...)
	return append(out, extra...)
}
