// Package prompt models the target text as per-character judgement states.
package prompt

// Status is the judgement of a single prompt character.
type Status int

const (
	StatusPending Status = iota
	StatusCorrect
	StatusIncorrect
)

func (s Status) String() string {
	switch s {
	case StatusCorrect:
		return "correct"
	case StatusIncorrect:
		return "incorrect"
	default:
		return "pending"
	}
}

// Char is one character of the prompt. Active marks the current input
// target and is layered over the status.
type Char struct {
	Rune   rune
	Status Status
	Active bool
}

// Prompt holds the target characters and the cursor. Its length never
// changes after construction.
type Prompt struct {
	chars  []Char
	cursor int
}

// New splits text into one Char per rune. The first character, if any,
// starts active.
func New(text string) *Prompt {
	runes := []rune(text)
	chars := make([]Char, len(runes))
	for i, r := range runes {
		chars[i] = Char{Rune: r}
	}
	if len(chars) > 0 {
		chars[0].Active = true
	}
	return &Prompt{chars: chars}
}

// Len returns the number of characters.
func (p *Prompt) Len() int {
	return len(p.chars)
}

// Cursor returns the index of the next character awaiting judgement.
func (p *Prompt) Cursor() int {
	return p.cursor
}

// Done reports whether every character has been consumed.
func (p *Prompt) Done() bool {
	return p.cursor >= len(p.chars)
}

// At returns the character at i.
func (p *Prompt) At(i int) Char {
	return p.chars[i]
}

// Chars returns a copy of all characters.
func (p *Prompt) Chars() []Char {
	out := make([]Char, len(p.chars))
	copy(out, p.chars)
	return out
}

// String returns the target text.
func (p *Prompt) String() string {
	runes := make([]rune, len(p.chars))
	for i, c := range p.chars {
		runes[i] = c.Rune
	}
	return string(runes)
}

// Advance judges typed against the character at the cursor and moves the
// cursor forward. It returns ok=false without mutation when the cursor is
// already at the end.
func (p *Prompt) Advance(typed rune) (correct, ok bool) {
	if p.Done() {
		return false, false
	}
	cur := &p.chars[p.cursor]
	correct = typed == cur.Rune
	if correct {
		cur.Status = StatusCorrect
	} else {
		cur.Status = StatusIncorrect
	}
	cur.Active = false
	p.cursor++
	if p.cursor < len(p.chars) {
		p.chars[p.cursor].Active = true
	}
	return correct, true
}

// Retreat moves the cursor back one character, discarding its previous
// judgement. It returns false without mutation at the start of the prompt.
func (p *Prompt) Retreat() bool {
	if p.cursor == 0 {
		return false
	}
	if p.cursor < len(p.chars) {
		p.chars[p.cursor].Active = false
	}
	p.cursor--
	p.chars[p.cursor] = Char{Rune: p.chars[p.cursor].Rune, Status: StatusPending, Active: true}
	return true
}
