package dom

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// XMLNode is one element of a parsed XML document.
type XMLNode struct {
	Name       string
	Attributes map[string]string
	Children   []*XMLNode
	Text       string
}

func (d *HeadlessDocument) ParseXML(data string) (*XMLNode, error) {
	return ParseXML(data)
}

// ParseXML parses data into a tree rooted at the document element.
func ParseXML(data string) (*XMLNode, error) {
	decoder := xml.NewDecoder(strings.NewReader(data))

	var root *XMLNode
	var stack []*XMLNode
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := token.(type) {
		case xml.StartElement:
			node := &XMLNode{Name: t.Name.Local, Attributes: map[string]string{}}
			for _, attr := range t.Attr {
				node.Attributes[attr.Name.Local] = attr.Value
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("xml: multiple document elements")
				}
				root = node
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			}
			stack = append(stack, node)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(t)
			}
		}
	}
	if root == nil {
		return nil, fmt.Errorf("xml: no document element")
	}
	return root, nil
}

// Find returns the first node named name, depth first, or nil.
func (n *XMLNode) Find(name string) *XMLNode {
	if n.Name == name {
		return n
	}
	for _, child := range n.Children {
		if found := child.Find(name); found != nil {
			return found
		}
	}
	return nil
}
