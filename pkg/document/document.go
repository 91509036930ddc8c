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
	"bytes"
	"io"
	"regexp"
	"strings"

	"github.com/beevik/etree"
	"gitlab.com/tozd/go/errors"
)

var (
	// ErrNoRoot is returned when a parsed document has no root element
	ErrNoRoot = errors.Base("document has no root element")
	// ErrMultipleRoots is returned when a parsed document has more than one root element
	ErrMultipleRoots = errors.Base("document has more than one root element")
)

// encoding/xml only accepts version 1.0, while view configurations are
// commonly written with a 1.1 declaration.
var xmlDeclVersion = regexp.MustCompile(`^(\s*<\?xml\s+version\s*=\s*)(["'])1\.1(["'])`)

// 📄 Document is an in-memory view configuration tree with exactly one root element
type Document struct {
	tree *etree.Document
}

// 🏭 New creates a document holding a single empty root element
func New(rootTag string) *Document {
	tree := newTree()
	tree.CreateElement(rootTag)
	return &Document{tree: tree}
}

// 📥 Parse reads a document from r
func Parse(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Errorf("reading document: %w", err)
	}
	return ParseBytes(data)
}

// 📥 ParseString reads a document from a string
func ParseString(s string) (*Document, error) {
	return ParseBytes([]byte(s))
}

// 📥 ParseBytes reads a document from raw bytes
func ParseBytes(data []byte) (*Document, error) {
	legacyVersion := xmlDeclVersion.Match(data)
	if legacyVersion {
		data = xmlDeclVersion.ReplaceAll(data, []byte("${1}${2}1.0${3}"))
	}

	tree := newTree()
	if err := tree.ReadFromBytes(data); err != nil {
		return nil, errors.Errorf("parsing document: %w", err)
	}

	switch n := len(tree.ChildElements()); {
	case n == 0:
		return nil, errors.WithStack(ErrNoRoot)
	case n > 1:
		return nil, errors.WithStack(ErrMultipleRoots)
	}

	if legacyVersion {
		for _, tok := range tree.Child {
			if pi, ok := tok.(*etree.ProcInst); ok && pi.Target == "xml" {
				pi.Inst = strings.Replace(pi.Inst, "1.0", "1.1", 1)
				break
			}
		}
	}

	return &Document{tree: tree}, nil
}

// newTree returns an empty tree whose output reads back to the same content.
// Canonical escaping writes carriage returns in text, and tabs and line breaks
// in attribute values, as character references.
func newTree() *etree.Document {
	tree := etree.NewDocument()
	tree.ReadSettings.PreserveCData = true
	tree.WriteSettings.CanonicalText = true
	tree.WriteSettings.CanonicalAttrVal = true
	return tree
}

// 📤 String serializes the document
func (d *Document) String() (string, error) {
	s, err := d.tree.WriteToString()
	if err != nil {
		return "", errors.Errorf("serializing document: %w", err)
	}
	return s, nil
}

// 📤 Bytes serializes the document
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := d.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// 📤 WriteTo serializes the document to w
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	n, err := d.tree.WriteTo(w)
	if err != nil {
		return n, errors.Errorf("serializing document: %w", err)
	}
	return n, nil
}

// Indented renders a pretty-printed copy for diagnostics. The document itself
// is left untouched.
func (d *Document) Indented() (string, error) {
	c := d.tree.Copy()
	c.Indent(2)
	s, err := c.WriteToString()
	if err != nil {
		return "", errors.Errorf("serializing document: %w", err)
	}
	return s, nil
}

// 🌳 Root returns the root element
func (d *Document) Root() *etree.Element {
	return d.tree.Root()
}

// RootTag returns the full name of the root element, including any prefix.
func (d *Document) RootTag() string {
	return d.tree.Root().FullTag()
}

// 📋 Copy returns a deep copy that shares nothing with d
func (d *Document) Copy() *Document {
	return &Document{tree: d.tree.Copy()}
}
