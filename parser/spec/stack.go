package spec

import "github.com/refhtml/refhtml/parser/webidl"

// Helpers for the open-elements stack and the active formatting list. Both
// are NodeLists whose entries are weak references into the tree; removing
// an entry never detaches the node from its parent.

// Contains returns the index of target in the list, or -1.
func Contains(target *Node, list *NodeList) int {
	for i := range *list {
		if (*list)[i] == target {
			return i
		}
	}
	return -1
}

// ContainsName returns the index of the last entry whose NodeName matches,
// or -1.
func ContainsName(name webidl.DOMString, list *NodeList) int {
	for i := len(*list) - 1; i >= 0; i-- {
		if (*list)[i].NodeName == name {
			return i
		}
	}
	return -1
}

// Remove deletes the entry at i, leaving the tree untouched.
func Remove(i int, list *NodeList) {
	if i < 0 || i >= len(*list) {
		return
	}
	*list = append((*list)[:i], (*list)[i+1:]...)
}

// RemoveNode deletes the first entry equal to target.
func RemoveNode(target *Node, list *NodeList) {
	Remove(Contains(target, list), list)
}

// Push appends an entry.
func Push(n *Node, list *NodeList) {
	*list = append(*list, n)
}

// Pop removes and returns the topmost (last) entry.
func Pop(list *NodeList) *Node {
	if len(*list) == 0 {
		return nil
	}
	n := (*list)[len(*list)-1]
	*list = (*list)[:len(*list)-1]
	return n
}

// Top returns the topmost (last) entry without removing it.
func Top(list *NodeList) *Node {
	if len(*list) == 0 {
		return nil
	}
	return (*list)[len(*list)-1]
}
