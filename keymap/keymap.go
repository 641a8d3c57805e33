package keymap

import (
	"encoding/json"
	"strings"
)

type (
	sequences struct {
		Seqs [][]string
	}

	keymapJSON struct {
		Keymaps []struct {
			Action string    `json:"action"`
			Keys   sequences `json:"keys"`
			Groups []string  `json:"groups"`
		} `json:"keymaps"`
	}

	node struct {
		childs map[string]*node
		action string
	}

	// Keymapper resolves key sequences to action names, one tree per
	// binding group (mode).
	Keymapper struct {
		treePerGroup map[string]*node
	}
)

func (n *node) add(keys []string, action string) {
	if n.childs == nil {
		n.childs = make(map[string]*node)
	}
	if len(keys) == 1 {
		if c := n.childs[keys[0]]; c != nil {
			c.action = action
			return
		}
		n.childs[keys[0]] = &node{action: action}
		return
	}
	if n.childs[keys[0]] == nil {
		n.childs[keys[0]] = &node{}
	}
	n.childs[keys[0]].add(keys[1:], action)
}

func (n *node) get(keys []string) (string, bool) {
	if n == nil {
		return "", false
	}
	if len(keys) == 0 {
		return n.action, len(n.childs) > 0
	}
	return n.childs[keys[0]].get(keys[1:])
}

func (n *node) String() string {
	if n.action != "" {
		return n.action
	}
	var b strings.Builder
	for k, c := range n.childs {
		b.WriteString(k + "\n " + strings.Join(strings.Split(c.String(), "\n"), "\n ") + "\n")
	}
	return b.String()
}

// New builds a Keymapper from the JSON keymap definition. An invalid
// definition is a programming error and panics.
func New(s string) Keymapper {
	m := make(map[string]*node)

	var j keymapJSON
	if err := json.Unmarshal([]byte(s), &j); err != nil {
		panic("keymap: invalid json: " + err.Error())
	}

	for _, km := range j.Keymaps {
		for _, group := range km.Groups {
			if m[group] == nil {
				m[group] = &node{}
			}
			for _, seq := range km.Keys.Seqs {
				m[group].add(seq, km.Action)
			}
		}
	}
	return Keymapper{treePerGroup: m}
}

// Get resolves a pending key sequence within a group. The second return
// reports whether any longer binding starts with the sequence.
func (k Keymapper) Get(keys []string, group string) (string, bool) {
	if k.treePerGroup[group] == nil {
		return "", false
	}
	return k.treePerGroup[group].get(keys)
}

// a "keys" value is either one sequence ["d","d"] or a list of
// alternative sequences [["h"],["left"]]
func (s *sequences) UnmarshalJSON(data []byte) error {
	var one []string
	if err := json.Unmarshal(data, &one); err == nil {
		s.Seqs = [][]string{one}
		return nil
	}
	return json.Unmarshal(data, &s.Seqs)
}
