// Copyright 2025 walteh LLC
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

package document

import (
	"strings"

	"github.com/beevik/etree"
	"gitlab.com/tozd/go/errors"
)

// 🔍 FindNodesE returns every element matching path, in document order
func (d *Document) FindNodesE(path string) ([]*etree.Element, error) {
	p, err := etree.CompilePath(path)
	if err != nil {
		return nil, errors.Errorf("compiling path %q: %w", path, err)
	}
	return d.tree.FindElementsPath(p), nil
}

// 🔍 FindNodes is FindNodesE for paths known to be valid. An invalid path
// matches nothing.
func (d *Document) FindNodes(path string) []*etree.Element {
	nodes, err := d.FindNodesE(path)
	if err != nil {
		return nil
	}
	return nodes
}

// 🎯 FindSingleNodeE returns the element matching path only when exactly one
// element matches. Zero or several matches both yield nil without an error.
func (d *Document) FindSingleNodeE(path string) (*etree.Element, error) {
	nodes, err := d.FindNodesE(path)
	if err != nil {
		return nil, err
	}
	if len(nodes) != 1 {
		return nil, nil
	}
	return nodes[0], nil
}

// 🎯 FindSingleNode is FindSingleNodeE for paths known to be valid
func (d *Document) FindSingleNode(path string) *etree.Element {
	node, err := d.FindSingleNodeE(path)
	if err != nil {
		return nil
	}
	return node
}

// ✏️ CreateOrReplaceChildText overwrites the text of the unique
// parentPath/childName element, or appends a new childName element to the
// root when there is no unique match.
func (d *Document) CreateOrReplaceChildText(parentPath, childName, text string) (*etree.Element, error) {
	node, err := d.FindSingleNodeE(strings.TrimSuffix(parentPath, "/") + "/" + childName)
	if err != nil {
		return nil, err
	}
	if node == nil {
		node = d.Root().CreateElement(childName)
	}
	SetTextContent(node, text)
	return node, nil
}

// 🗑️ RemoveNodes detaches every element matching path and reports how many were removed
func (d *Document) RemoveNodes(path string) (int, error) {
	nodes, err := d.FindNodesE(path)
	if err != nil {
		return 0, err
	}
	for _, n := range nodes {
		if parent := n.Parent(); parent != nil {
			parent.RemoveChild(n)
		}
	}
	return len(nodes), nil
}

// SetTextContent replaces every child of el with a single text node.
// An empty text leaves el without children.
func SetTextContent(el *etree.Element, text string) {
	for len(el.Child) > 0 {
		el.RemoveChildAt(len(el.Child) - 1)
	}
	if text != "" {
		el.SetText(text)
	}
}

const cdataEnd = "]]>"

// ✏️ SetCharData replaces the content of cd. CDATA content holding "]]>" is
// split over consecutive CDATA sections so the output stays well formed.
func SetCharData(cd *etree.CharData, data string) {
	parent := cd.Parent()
	if !cd.IsCData() || parent == nil || !strings.Contains(data, cdataEnd) {
		cd.SetData(data)
		return
	}

	parts := splitCData(data)
	cd.SetData(parts[0])
	for i, part := range parts[1:] {
		parent.InsertChildAt(cd.Index()+1+i, etree.NewCData(part))
	}
}

// splitCData cuts data between "]]" and ">" of every "]]>"
func splitCData(data string) []string {
	var parts []string
	for {
		i := strings.Index(data, cdataEnd)
		if i < 0 {
			return append(parts, data)
		}
		parts = append(parts, data[:i+2])
		data = data[i+2:]
	}
}

// 📝 TextNodes collects every text-bearing token (text and CDATA) in document order
func (d *Document) TextNodes() []*etree.CharData {
	var out []*etree.CharData
	var walk func(el *etree.Element)
	walk = func(el *etree.Element) {
		for _, tok := range el.Child {
			switch t := tok.(type) {
			case *etree.CharData:
				out = append(out, t)
			case *etree.Element:
				walk(t)
			}
		}
	}
	walk(d.Root())
	return out
}

// RenderPath builds a readable path from tok up to the root, for display only.
// The result is not guaranteed to be a valid query.
func RenderPath(tok etree.Token) string {
	var parts []string
	var el *etree.Element
	switch t := tok.(type) {
	case *etree.Element:
		el = t
	case *etree.CharData:
		parts = append(parts, "text()")
		el = t.Parent()
	default:
		el = tok.Parent()
	}
	// the document itself is the only element without a parent
	for ; el != nil && el.Parent() != nil; el = el.Parent() {
		parts = append(parts, el.FullTag())
	}

	var b strings.Builder
	for i := len(parts) - 1; i >= 0; i-- {
		b.WriteByte('/')
		b.WriteString(parts[i])
	}
	return b.String()
}
