package collections_test

// people returns a fresh fixture for every test, since in-place operations
// write into the slice they are given.
func people() []any {
	return []any{
		map[string]any{"name": "Alice", "age": 30, "team": "red", "email": "alice@example.com", "tags": []any{"admin", "ops"}},
		map[string]any{"name": "Bob", "age": 17, "team": "blue", "email": nil},
		map[string]any{"name": "Carol", "age": 45, "team": "red"},
	}
}
