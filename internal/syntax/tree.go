// Copyright 2024 The syns Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package syntax

// Node is either a Leaf or a Group. Both satisfy Node so a tree can be
// walked generically.
type Node interface {
	node()
	// FullSpan is the span the node covers in the source, including
	// (for a Group) both delimiters.
	FullSpan() Span
}

// Leaf wraps any non-block token: identifiers, numbers, strings,
// comments, whitespace, and punctuation (including a close delimiter
// that did not match the top of the group stack, see Build).
type Leaf struct {
	Tok Token
}

func (Leaf) node()                 {}
func (l Leaf) FullSpan() Span      { return l.Tok.Span }

// Group is a sub-tree bounded by a matching pair of configured block
// delimiters. PairIndex is the index into the Options.Blocks that
// produced it (-1 for the synthetic file root).
type Group struct {
	PairIndex int
	OpenSpan  Span
	// CloseSpan is nil if the block was never closed before EOF; Full
	// then extends to the end of the source and matching still
	// succeeds against the group's (possibly empty) children.
	CloseSpan *Span
	Children  []Node
	Full      Span
}

func (Group) node()            {}
func (g Group) FullSpan() Span { return g.Full }

// Closed reports whether g has an explicit closing delimiter.
func (g Group) Closed() bool { return g.CloseSpan != nil }

// Build folds a flat token sequence into a tree rooted at a synthetic
// Group covering the whole input. A BlockOpen token pushes a new Group;
// a BlockClose token pops the innermost open Group when that Group has
// the same PairIndex. A BlockClose that does not match the top of the stack is
// demoted to an ordinary Leaf(Punct) so Build never fails -- source
// code routinely contains delimiters that are unbalanced by design
// (already hidden as leaves inside strings/comments) or by user error,
// and the tool must degrade gracefully rather than refuse to search the
// file.
//
// Trivia (whitespace, comments) is carried through as ordinary Leaf
// nodes at whatever nesting level it lexically appears in.
func Build(tokens []Token, srcLen int) *Group {
	root := &Group{PairIndex: -1, OpenSpan: Span{0, 0}}
	stack := []*Group{root}

	top := func() *Group { return stack[len(stack)-1] }

	for _, t := range tokens {
		switch t.Kind {
		case KindBlockOpen:
			g := &Group{PairIndex: t.PairIndex, OpenSpan: t.Span, Full: t.Span}
			top().Children = append(top().Children, g)
			stack = append(stack, g)
		case KindBlockClose:
			if len(stack) > 1 && top().PairIndex == t.PairIndex {
				g := stack[len(stack)-1]
				closeSpan := t.Span
				g.CloseSpan = &closeSpan
				g.Full = g.OpenSpan.Union(t.Span)
				stack = stack[:len(stack)-1]
				// Extend the enclosing group's Full span to cover the
				// child we just closed.
				top().Full = top().Full.Union(g.Full)
			} else {
				demoted := t
				demoted.Kind = KindPunct
				leaf := Leaf{Tok: demoted}
				top().Children = append(top().Children, leaf)
				top().Full = extendFull(top(), leaf.FullSpan())
			}
		default:
			leaf := Leaf{Tok: t}
			top().Children = append(top().Children, leaf)
			top().Full = extendFull(top(), leaf.FullSpan())
		}
	}

	// Close any groups still open at EOF: unclosed, spanning to the
	// end of the source.
	for len(stack) > 1 {
		g := stack[len(stack)-1]
		g.Full = Span{g.Full.Start, srcLen}
		stack = stack[:len(stack)-1]
		top := stack[len(stack)-1]
		top.Full = extendFull(top, g.Full)
	}
	root.Full = Span{0, srcLen}
	return root
}

func extendFull(g *Group, s Span) Span {
	return g.Full.Union(s)
}

// Leaves returns every Leaf in g's children, in order, skipping nested
// Groups entirely (a shallow, one-level view).
func (g *Group) Leaves() []Token {
	var out []Token
	for _, c := range g.Children {
		if l, ok := c.(Leaf); ok {
			out = append(out, l.Tok)
		}
	}
	return out
}

// Walk calls visit for g and every descendant Group, in document order
// (pre-order, a Group before its children).
func (g *Group) Walk(visit func(*Group)) {
	visit(g)
	for _, c := range g.Children {
		if sub, ok := c.(*Group); ok {
			sub.Walk(visit)
		}
	}
}
