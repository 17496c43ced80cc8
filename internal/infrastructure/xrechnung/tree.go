package xrechnung

import "strings"

// element nodo del árbol CII. El orden de children es el orden de salida,
// así el orden exigido por el esquema queda fijado al construir el árbol.
type element struct {
	name     string
	attrs    []attr
	text     string
	children []*element
}

type attr struct {
	name  string
	value string
}

// node crea un elemento contenedor; los hijos nil se ignoran (elementos opcionales).
func node(name string, children ...*element) *element {
	e := &element{name: name}
	return e.add(children...)
}

// leaf crea un elemento con texto.
func leaf(name, text string, attrs ...attr) *element {
	return &element{name: name, text: text, attrs: attrs}
}

// optLeaf como leaf, pero nil si el texto está vacío.
func optLeaf(name, text string, attrs ...attr) *element {
	if text == "" {
		return nil
	}
	return leaf(name, text, attrs...)
}

func (e *element) add(children ...*element) *element {
	for _, c := range children {
		if c != nil {
			e.children = append(e.children, c)
		}
	}
	return e
}

// render serializa el árbol con sangría de dos espacios.
func (e *element) render() string {
	var b strings.Builder
	e.write(&b, 0)
	return b.String()
}

// check recorre el árbol y devuelve el primer texto o atributo no serializable.
func (e *element) check() error {
	for _, a := range e.attrs {
		if err := CheckXMLText(a.value); err != nil {
			return at(err, e.name+"@"+a.name)
		}
	}
	if err := CheckXMLText(e.text); err != nil {
		return at(err, e.name)
	}
	for _, c := range e.children {
		if err := c.check(); err != nil {
			return err
		}
	}
	return nil
}

func at(err error, where string) error {
	if te, ok := err.(*InvalidTextError); ok {
		te.Element = where
	}
	return err
}

func (e *element) write(b *strings.Builder, depth int) {
	indent := strings.Repeat("  ", depth)
	b.WriteString(indent)
	b.WriteByte('<')
	b.WriteString(e.name)
	for _, a := range e.attrs {
		b.WriteByte(' ')
		b.WriteString(a.name)
		b.WriteString(`="`)
		b.WriteString(EscapeXML(a.value))
		b.WriteByte('"')
	}
	b.WriteByte('>')
	if len(e.children) == 0 {
		b.WriteString(EscapeXML(e.text))
	} else {
		b.WriteByte('\n')
		for _, c := range e.children {
			c.write(b, depth+1)
		}
		b.WriteString(indent)
	}
	b.WriteString("</")
	b.WriteString(e.name)
	b.WriteString(">\n")
}
