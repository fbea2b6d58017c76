package dom

import "strings"

// TokenList is a live, ordered, duplicate-free view over a space-separated
// attribute value, as ClassList exposes for class. Reads parse the attribute
// on demand; writes go back through SetAttribute so observers see them.
type TokenList struct {
	element  *Element
	attrName string
}

func (t *TokenList) tokens() []string {
	raw, _ := t.element.GetAttribute(t.attrName)
	fields := strings.Fields(raw)
	seen := make(map[string]bool, len(fields))
	result := fields[:0]
	for _, tok := range fields {
		if !seen[tok] {
			seen[tok] = true
			result = append(result, tok)
		}
	}
	return result
}

func (t *TokenList) setTokens(tokens []string) {
	t.element.SetAttribute(t.attrName, strings.Join(tokens, " "))
}

// Length returns the number of distinct tokens.
func (t *TokenList) Length() int {
	return len(t.tokens())
}

// Values returns the distinct tokens in order.
func (t *TokenList) Values() []string {
	return t.tokens()
}

// Contains reports whether the token is present.
func (t *TokenList) Contains(token string) bool {
	for _, tok := range t.tokens() {
		if tok == token {
			return true
		}
	}
	return false
}

// Add appends the given tokens, skipping ones already present. Errors are
// swallowed; use AddWithError when they matter.
func (t *TokenList) Add(tokens ...string) {
	_ = t.AddWithError(tokens...)
}

// AddWithError appends the given tokens after validating them.
func (t *TokenList) AddWithError(tokens ...string) error {
	if err := validateTokens(tokens); err != nil {
		return err
	}
	current := t.tokens()
	changed := false
	for _, token := range tokens {
		if !containsToken(current, token) {
			current = append(current, token)
			changed = true
		}
	}
	if changed {
		t.setTokens(current)
	}
	return nil
}

// Remove removes the given tokens if present. Errors are swallowed; use
// RemoveWithError when they matter.
func (t *TokenList) Remove(tokens ...string) {
	_ = t.RemoveWithError(tokens...)
}

// RemoveWithError removes the given tokens after validating them.
func (t *TokenList) RemoveWithError(tokens ...string) error {
	if err := validateTokens(tokens); err != nil {
		return err
	}
	current := t.tokens()
	result := current[:0]
	for _, tok := range current {
		if !containsToken(tokens, tok) {
			result = append(result, tok)
		}
	}
	if len(result) != len(current) {
		t.setTokens(result)
	}
	return nil
}

// Toggle removes the token when present and adds it when absent, returning
// whether the token is present afterwards. When force is given it dictates
// the final state.
func (t *TokenList) Toggle(token string, force ...bool) bool {
	result, _ := t.ToggleWithError(token, force...)
	return result
}

// ToggleWithError toggles the token after validating it.
func (t *TokenList) ToggleWithError(token string, force ...bool) (bool, error) {
	if err := validateTokens([]string{token}); err != nil {
		return false, err
	}
	present := t.Contains(token)
	want := !present
	if len(force) > 0 {
		want = force[0]
	}
	if want && !present {
		t.Add(token)
	} else if !want && present {
		t.Remove(token)
	}
	return want, nil
}

// String returns the serialized token list.
func (t *TokenList) String() string {
	return strings.Join(t.tokens(), " ")
}

func containsToken(tokens []string, token string) bool {
	for _, tok := range tokens {
		if tok == token {
			return true
		}
	}
	return false
}

func validateTokens(tokens []string) error {
	for _, token := range tokens {
		if token == "" {
			return ErrSyntax("The token provided must not be empty.")
		}
		if strings.ContainsAny(token, " \t\n\f\r") {
			return ErrInvalidCharacter("The token provided contains HTML space characters, which are not valid in tokens.")
		}
	}
	return nil
}
