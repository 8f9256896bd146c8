package imgedit

import "slices"

// Entry is one operation on a stack and whether it takes part in
// recomputes. Inactive entries behave exactly as if they were removed.
type Entry struct {
	Op     Operation
	Active bool
}

// OperationStack is an ordered list of operations. Index-based edits are
// bounds-checked: out-of-range indices are ignored and reported by a
// false return value.
//
// OperationStack is not safe for concurrent use; the Engine guards its
// stacks with its own lock.
type OperationStack struct {
	entries []Entry
}

// Len returns the number of entries.
func (s *OperationStack) Len() int {
	return len(s.entries)
}

// Entries returns a copy of the entries, bottom first.
func (s *OperationStack) Entries() []Entry {
	return slices.Clone(s.entries)
}

// At returns the entry at index i.
func (s *OperationStack) At(i int) (Entry, bool) {
	if !s.valid(i) {
		return Entry{}, false
	}
	return s.entries[i], true
}

// Push appends an active entry for op.
func (s *OperationStack) Push(op Operation) {
	s.entries = append(s.entries, Entry{Op: op, Active: true})
}

// Remove deletes the entry at index i.
func (s *OperationStack) Remove(i int) bool {
	if !s.valid(i) {
		return false
	}
	s.entries = slices.Delete(s.entries, i, i+1)
	return true
}

// Swap exchanges the entries at i and j.
func (s *OperationStack) Swap(i, j int) bool {
	if !s.valid(i) || !s.valid(j) || i == j {
		return false
	}
	s.entries[i], s.entries[j] = s.entries[j], s.entries[i]
	return true
}

// MoveUp moves entry i one place earlier in the replay order. Moving the
// first entry up is a no-op.
func (s *OperationStack) MoveUp(i int) bool {
	return s.Swap(i, i-1)
}

// MoveDown moves entry i one place later in the replay order. Moving the
// last entry down is a no-op.
func (s *OperationStack) MoveDown(i int) bool {
	return s.Swap(i, i+1)
}

// SetActive enables or disables entry i. It reports false when i is out
// of range or the flag already had that value.
func (s *OperationStack) SetActive(i int, active bool) bool {
	if !s.valid(i) || s.entries[i].Active == active {
		return false
	}
	s.entries[i].Active = active
	return true
}

// Replace swaps the operation at i for op, keeping the active flag. Used
// when an operation's parameters are edited.
func (s *OperationStack) Replace(i int, op Operation) bool {
	if !s.valid(i) || op == nil {
		return false
	}
	s.entries[i].Op = op
	return true
}

// Clear removes every entry and reports whether there were any.
func (s *OperationStack) Clear() bool {
	if len(s.entries) == 0 {
		return false
	}
	s.entries = nil
	return true
}

// active returns the operations of active entries, in order.
func (s *OperationStack) active() []Operation {
	ops := make([]Operation, 0, len(s.entries))
	for _, e := range s.entries {
		if e.Active && e.Op != nil {
			ops = append(ops, e.Op)
		}
	}
	return ops
}

func (s *OperationStack) valid(i int) bool {
	return i >= 0 && i < len(s.entries)
}
