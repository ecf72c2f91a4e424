package rdf

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

const (
	rdfNS = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	xmlNS = "http://www.w3.org/XML/1998/namespace"
)

// rdfxmlParser decodes the RDF/XML subset that authority endpoints
// actually serve: node elements with rdf:about or rdf:nodeID, property
// elements with rdf:resource, nested node elements, parseType="Resource",
// language-tagged and datatyped literals.
type rdfxmlParser struct{}

func (*rdfxmlParser) Format() Format { return FormatRDFXML }

func (*rdfxmlParser) Parse(r io.Reader) (*Graph, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	st := &rdfxmlState{dec: dec, graph: NewGraph()}
	if err := st.run(); err != nil {
		return nil, err
	}
	return st.graph, nil
}

type rdfxmlState struct {
	dec    *xml.Decoder
	graph  *Graph
	blanks int
}

func (st *rdfxmlState) blank() string {
	st.blanks++
	return fmt.Sprintf("_:b%d", st.blanks)
}

// run finds the rdf:RDF root and parses each top-level node element.
func (st *rdfxmlState) run() error {
	root, err := st.nextStart()
	if err != nil {
		return err
	}
	if root == nil {
		return fmt.Errorf("empty document")
	}
	if root.Name.Space != rdfNS || root.Name.Local != "RDF" {
		return fmt.Errorf("root element is %s:%s, want rdf:RDF", root.Name.Space, root.Name.Local)
	}
	lang := langAttr(root.Attr, "")
	for {
		tok, err := st.dec.Token()
		if err == io.EOF {
			return fmt.Errorf("unterminated rdf:RDF element")
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if _, err := st.parseNode(t, lang); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

// nextStart skips prolog tokens until the first start element.
func (st *rdfxmlState) nextStart() (*xml.StartElement, error) {
	for {
		tok, err := st.dec.Token()
		if err == io.EOF {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		if se, ok := tok.(xml.StartElement); ok {
			return &se, nil
		}
	}
}

// parseNode parses a node element and returns its subject. A typed node
// element (anything but rdf:Description) emits an rdf:type triple.
func (st *rdfxmlState) parseNode(se xml.StartElement, lang string) (string, error) {
	lang = langAttr(se.Attr, lang)

	subject := ""
	for _, a := range se.Attr {
		if a.Name.Space != rdfNS {
			continue
		}
		switch a.Name.Local {
		case "about":
			subject = a.Value
		case "nodeID":
			subject = "_:" + a.Value
		}
	}
	if subject == "" {
		subject = st.blank()
	}

	if se.Name.Space != rdfNS || se.Name.Local != "Description" {
		st.graph.Add(Triple{subject, rdfNS + "type", IRI(se.Name.Space + se.Name.Local)})
	}

	for {
		tok, err := st.dec.Token()
		if err != nil {
			if err == io.EOF {
				return "", fmt.Errorf("unterminated element %s", se.Name.Local)
			}
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if err := st.parseProperty(subject, t, lang); err != nil {
				return "", err
			}
		case xml.EndElement:
			return subject, nil
		}
	}
}

// parseProperty parses one property element of the given subject.
func (st *rdfxmlState) parseProperty(subject string, se xml.StartElement, lang string) error {
	predicate := se.Name.Space + se.Name.Local
	lang = langAttr(se.Attr, lang)

	datatype := ""
	parseType := ""
	for _, a := range se.Attr {
		if a.Name.Space != rdfNS {
			continue
		}
		switch a.Name.Local {
		case "resource":
			st.graph.Add(Triple{subject, predicate, IRI(a.Value)})
			return st.dec.Skip()
		case "nodeID":
			st.graph.Add(Triple{subject, predicate, IRI("_:" + a.Value)})
			return st.dec.Skip()
		case "datatype":
			datatype = a.Value
		case "parseType":
			parseType = a.Value
		}
	}

	if parseType == "Resource" {
		// Implicit blank node whose property elements follow directly.
		node := st.blank()
		st.graph.Add(Triple{subject, predicate, IRI(node)})
		for {
			tok, err := st.dec.Token()
			if err != nil {
				return err
			}
			switch t := tok.(type) {
			case xml.StartElement:
				if err := st.parseProperty(node, t, lang); err != nil {
					return err
				}
			case xml.EndElement:
				return nil
			}
		}
	}
	if parseType != "" {
		// parseType="Literal"/"Collection" never occur in the records we
		// consume; swallow the subtree rather than failing the document.
		return st.dec.Skip()
	}

	var text strings.Builder
	sawChild := false
	for {
		tok, err := st.dec.Token()
		if err != nil {
			if err == io.EOF {
				return fmt.Errorf("unterminated property element %s", se.Name.Local)
			}
			return err
		}
		switch t := tok.(type) {
		case xml.CharData:
			text.Write(t)
		case xml.StartElement:
			sawChild = true
			child, err := st.parseNode(t, lang)
			if err != nil {
				return err
			}
			st.graph.Add(Triple{subject, predicate, IRI(child)})
		case xml.EndElement:
			if !sawChild {
				literalLang := lang
				if datatype != "" {
					literalLang = ""
				}
				st.graph.Add(Triple{subject, predicate, Literal(text.String(), literalLang, datatype)})
			}
			return nil
		}
	}
}

// langAttr resolves xml:lang, inheriting the ancestor value when absent.
func langAttr(attrs []xml.Attr, inherited string) string {
	for _, a := range attrs {
		if a.Name.Local == "lang" && (a.Name.Space == "xml" || a.Name.Space == xmlNS) {
			return a.Value
		}
	}
	return inherited
}
